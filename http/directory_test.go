package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/leaders"
	lhttp "github.com/fwojciec/leaders/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCookie = "user_cookie"

// directoryServer emulates the leaders directory. Data endpoints require
// the cookie handed out by /cookie whose value matches the current session.
type directoryServer struct {
	session      atomic.Int32
	cookieCalls  atomic.Int32
	leadersQuery atomic.Value
}

func (s *directoryServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Alive"))
	})
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		s.cookieCalls.Add(1)
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: s.sessionValue(), Path: "/"})
		_, _ = w.Write([]byte(`{"message":"The cookie has been created"}`))
	})
	mux.HandleFunc("/countries", func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`["us","be","fr"]`))
	})
	mux.HandleFunc("/leaders", func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		s.leadersQuery.Store(r.URL.Query().Get("country"))
		_, _ = w.Write([]byte(`[
			{"id":"Q1","first_name":"George","last_name":"Washington","birth_date":"1732-02-22","death_date":"1799-12-14","place_of_birth":"Westmoreland County","wikipedia_url":"https://en.wikipedia.org/wiki/George_Washington","start_mandate":"1789-04-30","end_mandate":"1797-03-04"},
			{"id":"Q2","first_name":"Joe","last_name":"Biden","birth_date":"1942-11-20","death_date":null,"place_of_birth":"Scranton","wikipedia_url":"https://en.wikipedia.org/wiki/Joe_Biden","start_mandate":"2021-01-20","end_mandate":null}
		]`))
	})
	return mux
}

func (s *directoryServer) sessionValue() string {
	return string(rune('a' + s.session.Load()))
}

func (s *directoryServer) authorized(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	return err == nil && c.Value == s.sessionValue()
}

func newDirectory(t *testing.T, srv *httptest.Server) *lhttp.Directory {
	t.Helper()
	cfg := lhttp.DefaultDirectoryConfig()
	cfg.BaseURL = srv.URL
	dir, err := lhttp.NewDirectory(cfg)
	require.NoError(t, err)
	return dir
}

func TestDirectory_Status(t *testing.T) {
	t.Parallel()

	t.Run("succeeds when the directory is alive", func(t *testing.T) {
		t.Parallel()

		ds := &directoryServer{}
		srv := httptest.NewServer(ds.handler())
		defer srv.Close()

		err := newDirectory(t, srv).Status(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int32(0), ds.cookieCalls.Load())
	})

	t.Run("returns EFETCH when the directory is down", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := newDirectory(t, srv).Status(context.Background())

		require.Error(t, err)
		assert.Equal(t, leaders.EFETCH, leaders.ErrorCode(err))
	})
}

func TestDirectory_Countries(t *testing.T) {
	t.Parallel()

	t.Run("requests a cookie before the first data call", func(t *testing.T) {
		t.Parallel()

		ds := &directoryServer{}
		srv := httptest.NewServer(ds.handler())
		defer srv.Close()
		dir := newDirectory(t, srv)

		countries, err := dir.Countries(context.Background())
		require.NoError(t, err)
		_, err = dir.Countries(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"us", "be", "fr"}, countries)
		assert.Equal(t, int32(1), ds.cookieCalls.Load())
	})

	t.Run("refreshes an expired cookie once", func(t *testing.T) {
		t.Parallel()

		ds := &directoryServer{}
		srv := httptest.NewServer(ds.handler())
		defer srv.Close()
		dir := newDirectory(t, srv)

		_, err := dir.Countries(context.Background())
		require.NoError(t, err)
		ds.session.Add(1)

		countries, err := dir.Countries(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"us", "be", "fr"}, countries)
		assert.Equal(t, int32(2), ds.cookieCalls.Load())
	})

	t.Run("returns EFETCH when still unauthorized after refresh", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/cookie" {
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newDirectory(t, srv).Countries(context.Background())

		require.Error(t, err)
		assert.Equal(t, leaders.EFETCH, leaders.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		_, err := newDirectory(t, srv).Countries(context.Background())

		require.Error(t, err)
		assert.Equal(t, leaders.EINVALID, leaders.ErrorCode(err))
	})
}

func TestDirectory_Leaders(t *testing.T) {
	t.Parallel()

	ds := &directoryServer{}
	srv := httptest.NewServer(ds.handler())
	defer srv.Close()

	list, err := newDirectory(t, srv).Leaders(context.Background(), "us")

	require.NoError(t, err)
	assert.Equal(t, "us", ds.leadersQuery.Load())
	require.Len(t, list, 2)

	washington := list[0]
	assert.Equal(t, "Q1", washington.ID)
	assert.Equal(t, "George Washington", washington.Name())
	assert.Equal(t, "https://en.wikipedia.org/wiki/George_Washington", washington.WikipediaURL)
	require.NotNil(t, washington.DeathDate)
	assert.Equal(t, "1799-12-14", *washington.DeathDate)
	assert.Equal(t, "us", washington.Country)

	biden := list[1]
	assert.Nil(t, biden.DeathDate)
	assert.Nil(t, biden.EndMandate)
	assert.Equal(t, "us", biden.Country)
}

func TestNewDirectory(t *testing.T) {
	t.Parallel()

	_, err := lhttp.NewDirectory(lhttp.DirectoryConfig{})

	require.Error(t, err)
	assert.Equal(t, leaders.EINVALID, leaders.ErrorCode(err))
}
