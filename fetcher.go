package overviewer

import (
	"context"
	"errors"
	"fmt"
)

// UserAgent is the browser-like user agent sent by every fetch strategy.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36 OverviewerScraper/1.0"

// FetchMethod identifies the strategy that produced or attempted a result.
type FetchMethod string

// Supported fetch methods.
const (
	MethodStatic  FetchMethod = "static"
	MethodDynamic FetchMethod = "dynamic"
)

// Markup is raw document content returned by a Fetcher.
type Markup struct {
	Body []byte

	// Encoding is the character encoding detected for Body.
	// Empty when Body is already UTF-8, as with browser-rendered markup.
	Encoding string
}

// Fetcher retrieves markup for a URL.
type Fetcher interface {
	// Fetch returns the markup at url. Failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Markup, error)

	// Close releases resources held by the Fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// BrowserLauncher starts headless browser sessions.
type BrowserLauncher interface {
	// Launch starts a browser and returns a Fetcher that renders pages with it.
	// Closing the returned Fetcher shuts the browser down.
	Launch(ctx context.Context) (Fetcher, error)
}

// FetchFailure classifies why a fetch attempt failed.
type FetchFailure string

// Fetch failure kinds.
const (
	FailureHTTPStatus         FetchFailure = "http_status"
	FailureNonHTMLContentType FetchFailure = "non_html_content_type"
	FailureTransport          FetchFailure = "transport"
	FailureRender             FetchFailure = "render"
	FailureUnknown            FetchFailure = "unknown"
)

// FetchError is returned by Fetchers when a URL could not be retrieved.
type FetchError struct {
	Kind FetchFailure
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failure fetching %s", e.Kind, e.URL)
	}
	return fmt.Sprintf("%s failure fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchFailureOf returns the failure kind carried by err.
// Errors that are not a *FetchError report FailureUnknown.
func FetchFailureOf(err error) FetchFailure {
	var e *FetchError
	if errors.As(err, &e) {
		return e.Kind
	}
	return FailureUnknown
}
