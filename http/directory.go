package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/leaders"
	"golang.org/x/net/publicsuffix"
)

// DefaultBaseURL is the public country-leaders directory.
const DefaultBaseURL = "https://country-leaders.onrender.com"

// DirectoryConfig locates the directory API endpoints.
type DirectoryConfig struct {
	BaseURL       string
	StatusPath    string
	CookiePath    string
	CountriesPath string
	LeadersPath   string
}

// DefaultDirectoryConfig returns the endpoints of the public directory.
func DefaultDirectoryConfig() DirectoryConfig {
	return DirectoryConfig{
		BaseURL:       DefaultBaseURL,
		StatusPath:    "/status",
		CookiePath:    "/cookie",
		CountriesPath: "/countries",
		LeadersPath:   "/leaders",
	}
}

// Ensure Directory implements leaders.Directory at compile time.
var _ leaders.Directory = (*Directory)(nil)

// Directory is a client for the country-leaders directory API.
//
// The API authenticates with a short-lived session cookie. The cookie is
// requested before the first data call and refreshed once when the API
// rejects a request as unauthorized.
type Directory struct {
	config    DirectoryConfig
	client    *http.Client
	userAgent string

	mu         sync.Mutex
	hasSession bool
}

// NewDirectory creates a Directory client for the given endpoints.
func NewDirectory(config DirectoryConfig, opts ...Option) (*Directory, error) {
	if config.BaseURL == "" {
		return nil, leaders.Errorf(leaders.EINVALID, "directory base URL required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, leaders.Errorf(leaders.EINVALID, "invalid directory base URL: %v", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	o := newOptions(opts)
	return &Directory{
		config: config,
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
			Jar:       jar,
		},
		userAgent: o.userAgent,
	}, nil
}

// Status checks that the directory is up.
func (d *Directory) Status(ctx context.Context) error {
	resp, err := d.get(ctx, d.config.StatusPath, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return leaders.Errorf(leaders.EFETCH, "directory status: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Countries returns the country codes listed by the directory.
func (d *Directory) Countries(ctx context.Context) ([]string, error) {
	var countries []string
	if err := d.getJSON(ctx, d.config.CountriesPath, nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Leaders returns the leaders of a country in directory order.
func (d *Directory) Leaders(ctx context.Context, country string) ([]*leaders.Leader, error) {
	var list []*leaders.Leader
	query := url.Values{"country": {country}}
	if err := d.getJSON(ctx, d.config.LeadersPath, query, &list); err != nil {
		return nil, err
	}
	for _, l := range list {
		l.Country = country
	}
	return list, nil
}

// refreshSession requests a new session cookie. The cookie jar stores it.
func (d *Directory) refreshSession(ctx context.Context) error {
	resp, err := d.get(ctx, d.config.CookiePath, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return leaders.Errorf(leaders.EFETCH, "directory cookie: HTTP %d", resp.StatusCode)
	}
	d.hasSession = true
	return nil
}

func (d *Directory) ensureSession(ctx context.Context, force bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasSession && !force {
		return nil
	}
	return d.refreshSession(ctx)
}

// getJSON decodes the JSON response of an authenticated endpoint into v.
func (d *Directory) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	if err := d.ensureSession(ctx, false); err != nil {
		return err
	}

	resp, err := d.get(ctx, path, query)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		if err := d.ensureSession(ctx, true); err != nil {
			return err
		}
		if resp, err = d.get(ctx, path, query); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return leaders.Errorf(leaders.EFETCH, "directory %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return leaders.Errorf(leaders.EINVALID, "directory %s: invalid JSON: %v", path, err)
	}
	return nil
}

func (d *Directory) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := strings.TrimSuffix(d.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, leaders.Errorf(leaders.EINVALID, "invalid directory URL %q: %v", endpoint, err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, leaders.Errorf(leaders.EFETCH, "directory %s: %v", path, err)
	}
	return resp, nil
}
