package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/leaders"
	"github.com/fwojciec/leaders/crawl"
	"github.com/fwojciec/leaders/fs"
	"github.com/fwojciec/leaders/goquery"
	lhttp "github.com/fwojciec/leaders/http"
	lslog "github.com/fwojciec/leaders/slog"
	"github.com/fwojciec/leaders/sqlite"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	format, err := fs.ParseFormat(c.Format, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	cfg := lhttp.DefaultDirectoryConfig()
	cfg.BaseURL = c.BaseURL
	opts := []lhttp.Option{
		lhttp.WithTimeout(c.Timeout),
		lhttp.WithUserAgent(c.UserAgent),
	}

	dir, err := lhttp.NewDirectory(cfg, opts...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	var directory leaders.Directory = dir
	var fetcher leaders.Fetcher = lhttp.NewFetcher(opts...)
	var retryLog crawl.LogFunc
	if deps.Logger != nil {
		directory = lslog.NewLoggingDirectory(directory, deps.Logger)
		fetcher = lslog.NewLoggingFetcher(fetcher, deps.Logger)
		retryLog = func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	crawler := &crawl.Crawler{
		Directory:   directory,
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		Detailed:    c.Detailed,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays(c.Retries),
		RetryLog:    retryLog,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Enriching %d leaders\n", event.Total)
		case crawl.ProgressCompleted:
			for _, w := range event.Warnings {
				fmt.Fprintf(deps.Stderr, "warn: %s: %s\n", event.Leader.Name(), leaders.ErrorMessage(w))
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", event.Leader.Name(), leaders.ErrorMessage(event.Error))
		}
	}

	writers := []leaders.DatasetWriter{fs.NewWriter(c.Output, format)}
	if c.DB != "" {
		db, err := openDB(c.DB)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		defer db.Close()
		writers = append(writers, sqlite.NewStore(db))
	}

	dataset, result, err := crawler.Crawl(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	if err := leaders.MultiWriter(writers...).WriteDataset(deps.Ctx, dataset); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d leaders from %d countries to %s (%d enriched, %d warnings, %d failed)\n",
		result.Leaders, result.Countries, c.Output, result.Enriched, result.Warnings, result.Failed)
	if c.DB != "" {
		fmt.Fprintf(deps.Stdout, "Stored run in %s\n", c.DB)
	}

	return nil
}

// retryDelays returns n doubling delays starting at one second.
func retryDelays(n int) []time.Duration {
	delays := []time.Duration{}
	for i := range max(n, 0) {
		delays = append(delays, time.Second<<i)
	}
	return delays
}
