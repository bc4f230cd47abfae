package mock

import (
	"context"

	"github.com/fwojciec/overviewer"
)

var _ overviewer.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of overviewer.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*overviewer.Markup, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*overviewer.Markup, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ overviewer.BrowserLauncher = (*BrowserLauncher)(nil)

// BrowserLauncher is a mock implementation of overviewer.BrowserLauncher.
type BrowserLauncher struct {
	LaunchFn func(ctx context.Context) (overviewer.Fetcher, error)
}

func (l *BrowserLauncher) Launch(ctx context.Context) (overviewer.Fetcher, error) {
	return l.LaunchFn(ctx)
}
