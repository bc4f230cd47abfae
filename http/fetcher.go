// Package http provides the static fetch strategy and the RPC server.
// The Fetcher retrieves markup with plain HTTP requests and does not
// execute JavaScript; the Server exposes an overviewer.Resolver over HTTP.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/overviewer"
	"github.com/gogs/chardet"
)

// DefaultFetchTimeout bounds a whole static request, body included.
const DefaultFetchTimeout = 15 * time.Second

// DefaultEncoding is reported when the body's encoding cannot be detected.
const DefaultEncoding = "utf-8"

// markupContentTypes are the content types the Fetcher accepts.
var markupContentTypes = []string{"text/html", "application/xhtml+xml"}

// Ensure Fetcher implements overviewer.Fetcher at compile time.
var _ overviewer.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Redirects are followed and certificate errors are ignored, since many
// small business sites run with misconfigured TLS.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides overviewer.UserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the HTTP client. The timeout option is ignored when
// a client is given.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: overviewer.UserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		f.client = &http.Client{
			Timeout:   f.timeout,
			Transport: transport,
		}
	}

	return f
}

// Fetch retrieves the markup at url and detects its character encoding.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*overviewer.Markup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureUnknown, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &overviewer.FetchError{
			Kind: overviewer.FailureHTTPStatus,
			URL:  url,
			Err:  fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !isMarkup(contentType) {
		return nil, &overviewer.FetchError{
			Kind: overviewer.FailureNonHTMLContentType,
			URL:  url,
			Err:  fmt.Errorf("content type %q", contentType),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureTransport, URL: url, Err: err}
	}
	if len(body) == 0 {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureUnknown, URL: url, Err: errors.New("empty response body")}
	}

	return &overviewer.Markup{Body: body, Encoding: DetectEncoding(body)}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// DetectEncoding guesses the character encoding of body.
// Valid UTF-8 (including plain ASCII) is reported as DefaultEncoding.
func DetectEncoding(body []byte) string {
	if utf8.Valid(body) {
		return DefaultEncoding
	}
	res, err := chardet.NewTextDetector().DetectBest(body)
	if err != nil || res == nil || res.Charset == "" {
		return DefaultEncoding
	}
	return strings.ToLower(res.Charset)
}

func isMarkup(contentType string) bool {
	for _, t := range markupContentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
