package mock

import (
	"context"

	"github.com/fwojciec/leaders"
)

var _ leaders.Directory = (*Directory)(nil)

// Directory is a mock implementation of leaders.Directory.
type Directory struct {
	StatusFn    func(ctx context.Context) error
	CountriesFn func(ctx context.Context) ([]string, error)
	LeadersFn   func(ctx context.Context, country string) ([]*leaders.Leader, error)
}

func (d *Directory) Status(ctx context.Context) error {
	return d.StatusFn(ctx)
}

func (d *Directory) Countries(ctx context.Context) ([]string, error) {
	return d.CountriesFn(ctx)
}

func (d *Directory) Leaders(ctx context.Context, country string) ([]*leaders.Leader, error) {
	return d.LeadersFn(ctx, country)
}
