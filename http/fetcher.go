// Package http provides net/http implementations of the leaders directory
// client and the Wikipedia page fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/leaders"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the tool to Wikipedia, which rejects
// requests without a descriptive User-Agent.
const DefaultUserAgent = "leaders/1.0 (https://github.com/fwojciec/leaders)"

// Ensure Fetcher implements leaders.Fetcher at compile time.
var _ leaders.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves article HTML using a single shared http.Client so
// connections are reused across leaders.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher or a Directory.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	transport http.RoundTripper
}

func newOptions(opts []Option) options {
	o := options{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTransport replaces the default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		timeout:   o.timeout,
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the HTML content from the given URL.
// Transport failures and non-200 responses are returned as EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", leaders.Errorf(leaders.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", leaders.Errorf(leaders.EFETCH, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", leaders.Errorf(leaders.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", leaders.Errorf(leaders.EFETCH, "read %s: %v", url, err)
	}

	return string(body), nil
}
