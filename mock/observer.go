package mock

import (
	"context"

	"github.com/fwojciec/overviewer"
)

var _ overviewer.Observer = (*Observer)(nil)

// Observer is a mock implementation of overviewer.Observer.
// Nil hooks are ignored.
type Observer struct {
	OnAttemptFn  func(ctx context.Context, r *overviewer.AttemptResult)
	OnSkipFn     func(ctx context.Context, key overviewer.AttemptKey)
	OnDiscoverFn func(ctx context.Context, baseURL string, method overviewer.FetchMethod, subpages []string)
	OnOutcomeFn  func(ctx context.Context, o *overviewer.Outcome)
}

func (o *Observer) OnAttempt(ctx context.Context, r *overviewer.AttemptResult) {
	if o.OnAttemptFn != nil {
		o.OnAttemptFn(ctx, r)
	}
}

func (o *Observer) OnSkip(ctx context.Context, key overviewer.AttemptKey) {
	if o.OnSkipFn != nil {
		o.OnSkipFn(ctx, key)
	}
}

func (o *Observer) OnDiscover(ctx context.Context, baseURL string, method overviewer.FetchMethod, subpages []string) {
	if o.OnDiscoverFn != nil {
		o.OnDiscoverFn(ctx, baseURL, method, subpages)
	}
}

func (o *Observer) OnOutcome(ctx context.Context, outcome *overviewer.Outcome) {
	if o.OnOutcomeFn != nil {
		o.OnOutcomeFn(ctx, outcome)
	}
}

var _ overviewer.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of overviewer.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, rawURL string) (*overviewer.Outcome, error)
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*overviewer.Outcome, error) {
	return r.ResolveFn(ctx, rawURL)
}
