package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/leaders"
)

// Ensure LoggingDirectory implements leaders.Directory.
var _ leaders.Directory = (*LoggingDirectory)(nil)

// LoggingDirectory wraps a Directory with debug logging.
type LoggingDirectory struct {
	next   leaders.Directory
	logger *slog.Logger
}

// NewLoggingDirectory creates a new LoggingDirectory.
func NewLoggingDirectory(next leaders.Directory, logger *slog.Logger) *LoggingDirectory {
	return &LoggingDirectory{next: next, logger: logger}
}

// Status delegates to the wrapped directory and logs the operation.
func (d *LoggingDirectory) Status(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		d.logger.Info("directory status",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Status(ctx)
}

// Countries delegates to the wrapped directory and logs the operation.
func (d *LoggingDirectory) Countries(ctx context.Context) (countries []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("directory countries",
			"count", len(countries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Countries(ctx)
}

// Leaders delegates to the wrapped directory and logs the operation.
func (d *LoggingDirectory) Leaders(ctx context.Context, country string) (list []*leaders.Leader, err error) {
	defer func(begin time.Time) {
		d.logger.Info("directory leaders",
			"country", country,
			"count", len(list),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Leaders(ctx, country)
}
