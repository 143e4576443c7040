// Package crawl orchestrates a leaders run: it lists leaders from the
// directory, fetches their articles concurrently, and enriches each record
// with its biography and personal details.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/fwojciec/leaders"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of articles fetched in parallel.
const DefaultConcurrency = 4

// Crawler builds an enriched leaders dataset.
type Crawler struct {
	Directory   leaders.Directory
	Fetcher     leaders.Fetcher
	Parser      leaders.MarkupParser
	RateLimiter leaders.DomainLimiter

	// Detailed lists the countries whose leaders also get personal details.
	Detailed []string

	Concurrency int
	RetryDelays []time.Duration

	// RetryLog, if set, is called before each fetch retry.
	RetryLog LogFunc
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Countries int
	Leaders   int
	Enriched  int
	Warnings  int
	Failed    int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Leader    *leaders.Leader
	Warnings  []error
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// job identifies one leader by its slot in the dataset.
type job struct {
	country  string
	position int
	leader   *leaders.Leader
	detailed bool
}

// jobResult holds the outcome of enriching a single leader.
type jobResult struct {
	job
	enriched *leaders.Leader
	warnings []error
	err      error
}

// Crawl lists every country and its leaders, then enriches all leaders.
// Directory failures abort the run. Per-leader failures do not: the leader
// is kept unenriched and reported through progress.
func (c *Crawler) Crawl(ctx context.Context, progress ProgressFunc) (leaders.Dataset, *Result, error) {
	if err := c.Directory.Status(ctx); err != nil {
		return nil, nil, fmt.Errorf("directory status: %w", err)
	}
	countries, err := c.Directory.Countries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list countries: %w", err)
	}

	dataset := make(leaders.Dataset, len(countries))
	var jobs []job
	for _, country := range countries {
		list, err := c.Directory.Leaders(ctx, country)
		if err != nil {
			return nil, nil, fmt.Errorf("list leaders of %s: %w", country, err)
		}
		if list == nil {
			list = []*leaders.Leader{}
		}
		dataset[country] = list
		detailed := slices.Contains(c.Detailed, country)
		for i, l := range list {
			jobs = append(jobs, job{country: country, position: i, leader: l, detailed: detailed})
		}
	}

	result := &Result{Countries: len(countries), Leaders: len(jobs)}
	total := len(jobs)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan jobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, j := range jobs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- c.process(gctx, j)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Each result lands in its own slot, so completion order does not
	// affect the order of leaders within a country.
	completed := 0
	for r := range resultCh {
		completed++
		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					Leader:    r.leader,
					Error:     r.err,
				})
			}
			continue
		}

		dataset[r.country][r.position] = r.enriched
		result.Enriched++
		result.Warnings += len(r.warnings)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				Leader:    r.enriched,
				Warnings:  r.warnings,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: completed,
			Total:     total,
		})
	}

	return dataset, result, nil
}

// process fetches, parses, and enriches a single leader.
func (c *Crawler) process(ctx context.Context, j job) jobResult {
	result := jobResult{job: j}

	if err := j.leader.Validate(); err != nil {
		result.err = err
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, hostOf(j.leader.WikipediaURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, j.leader.WikipediaURL, c.Fetcher.Fetch, c.RetryLog, delays)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := c.Parser.Parse(html)
	if err != nil {
		result.err = err
		return result
	}

	result.enriched, result.warnings = leaders.Enrich(j.leader, doc, j.detailed)
	return result
}

// hostOf returns the host of rawURL, or rawURL itself when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
