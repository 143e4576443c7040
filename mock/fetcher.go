package mock

import (
	"context"

	"github.com/fwojciec/leaders"
)

var _ leaders.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of leaders.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ leaders.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of leaders.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
