// Package scrape walks the escalation ladder that turns a website URL into
// its main descriptive text. It cleans parsed documents, discovers
// about-style subpages and decides between success and the best short
// result. It depends only on the interfaces in the root package.
package scrape

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/fwojciec/overviewer"
)

// DefaultMinContentLength is the number of characters cleaned text needs
// to count as a success.
const DefaultMinContentLength = 300

var _ overviewer.Resolver = (*Scraper)(nil)

// Scraper resolves URLs by trying static and dynamic fetches on the page
// and its about-style subpages, in a fixed order.
//
// A Scraper holds no per-request state and is safe for concurrent use.
type Scraper struct {
	Static   overviewer.Fetcher
	Browsers overviewer.BrowserLauncher
	Parser   overviewer.Parser
	Observer overviewer.Observer

	// MinContentLength overrides DefaultMinContentLength when positive.
	MinContentLength int
}

// Resolve normalizes rawURL and walks the ladder:
//
//  1. static fetch of the URL
//  2. static fetch of subpages discovered on it
//  3. dynamic fetch of the URL
//  4. dynamic fetch of the subpages, discovered on the rendered page when
//     step 1 found none
//
// The first attempt with enough text ends the walk. At most one browser is
// launched, on the first dynamic attempt, and it is closed before Resolve
// returns.
func (s *Scraper) Resolve(ctx context.Context, rawURL string) (*overviewer.Outcome, error) {
	target, err := overviewer.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	r := &run{
		scraper:   s,
		observer:  s.observer(),
		target:    target,
		minLength: s.minLength(),
		attempted: make(map[overviewer.AttemptKey]struct{}),
	}
	defer r.close()

	for _, step := range r.ladder() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res := step(ctx); res != nil {
			outcome := &overviewer.Outcome{
				Status:    overviewer.OutcomeSuccess,
				Content:   res.Text,
				SourceURL: res.URL,
				Method:    res.Method,
			}
			r.observer.OnOutcome(ctx, outcome)
			return outcome, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := r.best.outcome(r.minLength)
	r.observer.OnOutcome(ctx, outcome)
	return outcome, nil
}

func (s *Scraper) minLength() int {
	if s.MinContentLength > 0 {
		return s.MinContentLength
	}
	return DefaultMinContentLength
}

func (s *Scraper) observer() overviewer.Observer {
	if s.Observer != nil {
		return s.Observer
	}
	return nopObserver{}
}

// step is one rung of the ladder. It returns the successful attempt that
// ends the walk, or nil to continue.
type step func(ctx context.Context) *overviewer.AttemptResult

// run is the state of a single Resolve call.
type run struct {
	scraper   *Scraper
	observer  overviewer.Observer
	target    string
	minLength int

	attempted map[overviewer.AttemptKey]struct{}
	best      bestShort
	subpages  []string

	browser   overviewer.Fetcher
	launchErr error
}

func (r *run) ladder() []step {
	return []step{
		r.mainStep(overviewer.MethodStatic),
		r.subpageStep(overviewer.MethodStatic),
		r.mainStep(overviewer.MethodDynamic),
		r.subpageStep(overviewer.MethodDynamic),
	}
}

// mainStep attempts the target URL and, if it came back short and no
// subpages are known yet, discovers them from its document.
func (r *run) mainStep(method overviewer.FetchMethod) step {
	return func(ctx context.Context) *overviewer.AttemptResult {
		res := r.attempt(ctx, r.target, method)
		if res == nil {
			return nil
		}
		if res.Status == overviewer.AttemptSuccess {
			return res
		}
		if res.Document != nil && len(r.subpages) == 0 {
			r.subpages = Discover(r.target, res.Document)
			r.observer.OnDiscover(ctx, r.target, method, r.subpages)
		}
		res.Document = nil
		return nil
	}
}

// subpageStep attempts every known subpage in order.
func (r *run) subpageStep(method overviewer.FetchMethod) step {
	return func(ctx context.Context) *overviewer.AttemptResult {
		for _, u := range r.subpages {
			if ctx.Err() != nil {
				return nil
			}
			res := r.attempt(ctx, u, method)
			if res == nil {
				continue
			}
			if res.Status == overviewer.AttemptSuccess {
				return res
			}
			res.Document = nil
		}
		return nil
	}
}

// attempt fetches, parses and cleans url with method, once per key.
// It returns nil when the key was already attempted.
func (r *run) attempt(ctx context.Context, url string, method overviewer.FetchMethod) *overviewer.AttemptResult {
	key := overviewer.AttemptKey{URL: url, Method: method}
	if _, ok := r.attempted[key]; ok {
		r.observer.OnSkip(ctx, key)
		return nil
	}
	r.attempted[key] = struct{}{}

	res := r.execute(ctx, key)
	r.best.offer(res)
	r.observer.OnAttempt(ctx, res)
	return res
}

func (r *run) execute(ctx context.Context, key overviewer.AttemptKey) *overviewer.AttemptResult {
	res := &overviewer.AttemptResult{URL: key.URL, Method: key.Method}

	markup, err := r.fetch(ctx, key)
	if err != nil {
		res.Status = overviewer.AttemptFailedFetch
		res.Err = err
		return res
	}

	doc, err := r.scraper.Parser.Parse(markup)
	if err != nil {
		res.Status = overviewer.AttemptFailedParse
		res.Err = err
		return res
	}

	res.Text = Clean(doc)
	res.Length = utf8.RuneCountInString(res.Text)
	if res.Length >= r.minLength {
		res.Status = overviewer.AttemptSuccess
		return res
	}
	res.Status = overviewer.AttemptShort
	res.Document = doc
	return res
}

func (r *run) fetch(ctx context.Context, key overviewer.AttemptKey) (*overviewer.Markup, error) {
	if key.Method == overviewer.MethodStatic {
		return r.scraper.Static.Fetch(ctx, key.URL)
	}

	browser, err := r.launch(ctx)
	if err != nil {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureRender, URL: key.URL, Err: err}
	}
	return browser.Fetch(ctx, key.URL)
}

// launch starts the browser on first use. A failed launch is not retried.
func (r *run) launch(ctx context.Context) (overviewer.Fetcher, error) {
	if r.browser != nil || r.launchErr != nil {
		return r.browser, r.launchErr
	}
	if r.scraper.Browsers == nil {
		r.launchErr = errors.New("no browser configured")
		return nil, r.launchErr
	}
	r.browser, r.launchErr = r.scraper.Browsers.Launch(ctx)
	if r.launchErr != nil {
		r.browser = nil
	}
	return r.browser, r.launchErr
}

func (r *run) close() {
	if r.browser != nil {
		_ = r.browser.Close()
		r.browser = nil
	}
}

type nopObserver struct{}

func (nopObserver) OnAttempt(context.Context, *overviewer.AttemptResult) {}
func (nopObserver) OnSkip(context.Context, overviewer.AttemptKey) {}
func (nopObserver) OnDiscover(context.Context, string, overviewer.FetchMethod, []string) {}
func (nopObserver) OnOutcome(context.Context, *overviewer.Outcome) {}
