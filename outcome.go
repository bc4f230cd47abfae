package overviewer

import "context"

// AttemptKey identifies one unit of work: a URL fetched with one method.
type AttemptKey struct {
	URL    string
	Method FetchMethod
}

// AttemptStatus is the result of a single fetch-parse-clean attempt.
type AttemptStatus string

// Attempt statuses.
const (
	AttemptSuccess     AttemptStatus = "success"
	AttemptShort       AttemptStatus = "short"
	AttemptFailedFetch AttemptStatus = "failed_fetch"
	AttemptFailedParse AttemptStatus = "failed_parse"
)

// AttemptResult records what happened when a URL was fetched with one method.
type AttemptResult struct {
	Status AttemptStatus
	URL    string
	Method FetchMethod

	// Text and Length are set for Success and Short attempts.
	// Length counts characters of the cleaned text.
	Text   string
	Length int

	// Document is set only for Short attempts, so that subpages can be
	// discovered from it.
	Document Document

	// Err is set for FailedFetch and FailedParse attempts.
	Err error
}

// Key returns the attempt's identity.
func (r *AttemptResult) Key() AttemptKey {
	return AttemptKey{URL: r.URL, Method: r.Method}
}

// OutcomeStatus tells success outcomes from error outcomes.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeError   OutcomeStatus = "error"
)

// Reason explains an error Outcome.
type Reason string

// Outcome error reasons.
const (
	ReasonContentTooShort Reason = "content_too_short"
	ReasonNotFound        Reason = "not_found"
)

// Outcome is the result of resolving a URL.
type Outcome struct {
	Status    OutcomeStatus `json:"status"`
	Content   string        `json:"content,omitempty"`
	SourceURL string        `json:"source_url,omitempty"`
	Method    FetchMethod   `json:"method,omitempty"`
	Reason    Reason        `json:"reason,omitempty"`
	Message   string        `json:"message,omitempty"`

	// Length is the best observed length for ContentTooShort outcomes.
	Length int `json:"length,omitempty"`
}

// Resolver extracts the main descriptive text for a website.
type Resolver interface {
	// Resolve normalizes rawURL and walks the fetch ladder.
	// Returns EINVALID if rawURL cannot be turned into an absolute URL.
	// Every other failure is reported through the returned Outcome.
	Resolve(ctx context.Context, rawURL string) (*Outcome, error)
}

// Observer receives progress notifications from a Resolver.
type Observer interface {
	// OnAttempt is called after every executed attempt.
	OnAttempt(ctx context.Context, r *AttemptResult)

	// OnSkip is called when an attempt is skipped because its key was
	// already attempted.
	OnSkip(ctx context.Context, key AttemptKey)

	// OnDiscover is called with the subpages found on baseURL.
	OnDiscover(ctx context.Context, baseURL string, method FetchMethod, subpages []string)

	// OnOutcome is called once with the final outcome.
	OnOutcome(ctx context.Context, o *Outcome)
}
