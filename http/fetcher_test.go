package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/overviewer"
	ovhttp "github.com/fwojciec/overviewer/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		m, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(m.Body))
		assert.Equal(t, "utf-8", m.Encoding)
	})

	t.Run("sends the browser-like user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>ok</p>"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, overviewer.UserAgent, <-agents)
	})

	t.Run("uses a custom user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>ok</p>"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher(ovhttp.WithUserAgent("test-agent/1.0"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/1.0", <-agents)
	})

	t.Run("follows redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>moved</p>"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		m, err := fetcher.Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, "<p>moved</p>", string(m.Body))
	})

	t.Run("accepts self-signed certificates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>secure</p>"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		m, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>secure</p>", string(m.Body))
	})

	t.Run("accepts XHTML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xhtml+xml")
			_, _ = w.Write([]byte("<html><body>x</body></html>"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	})

	t.Run("detects a legacy single-byte encoding", func(t *testing.T) {
		t.Parallel()

		body := "<html><body><p>" + strings.Repeat("Le caf\xe9 de la soci\xe9t\xe9 est situ\xe9 pr\xe8s de la gare, o\xf9 l'\xe9quipe pr\xe9pare des cr\xeapes. ", 20) + "</p></body></html>"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		m, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.NotEmpty(t, m.Encoding)
		assert.NotEqual(t, "utf-8", m.Encoding)
	})

	t.Run("fails with http status for error responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, overviewer.FailureHTTPStatus, overviewer.FetchFailureOf(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("fails with non-HTML content type for JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"about":"us"}`))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		m, err := fetcher.Fetch(context.Background(), server.URL)
		assert.Nil(t, m)
		assert.Equal(t, overviewer.FailureNonHTMLContentType, overviewer.FetchFailureOf(err))
	})

	t.Run("fails for an empty body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		assert.Equal(t, overviewer.FailureUnknown, overviewer.FetchFailureOf(err))
	})

	t.Run("fails with transport error on timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := ovhttp.NewFetcher(ovhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, overviewer.FailureTransport, overviewer.FetchFailureOf(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, overviewer.FailureTransport, overviewer.FetchFailureOf(err))
	})

	t.Run("fails with transport error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := ovhttp.NewFetcher(ovhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, overviewer.FailureTransport, overviewer.FetchFailureOf(err))
	})

	t.Run("fails with unknown error for a malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := ovhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://exa mple.com/\x7f")
		require.Error(t, err)
		assert.Equal(t, overviewer.FailureUnknown, overviewer.FetchFailureOf(err))
	})
}

func TestDetectEncoding(t *testing.T) {
	t.Parallel()

	t.Run("reports utf-8 for ASCII", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "utf-8", ovhttp.DetectEncoding([]byte("<p>plain</p>")))
	})

	t.Run("reports utf-8 for multi-byte text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "utf-8", ovhttp.DetectEncoding([]byte("<p>Zürich, München, Kraków</p>")))
	})
}

// Compile-time verification that Fetcher implements overviewer.Fetcher
var _ overviewer.Fetcher = (*ovhttp.Fetcher)(nil)
