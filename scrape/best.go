package scrape

import (
	"fmt"

	"github.com/fwojciec/overviewer"
)

// notFoundMessage is reported when no attempt produced any cleaned text.
const notFoundMessage = "Could not find or access relevant content on the website after trying primary and potential subpages with static and dynamic methods."

// bestShort keeps the longest Short attempt seen during one resolve.
type bestShort struct {
	result *overviewer.AttemptResult
}

// length returns the length of the current best, or zero when there is none.
func (b *bestShort) length() int {
	if b.result == nil {
		return 0
	}
	return b.result.Length
}

// offer records r if it is a Short attempt strictly longer than the current
// best. It reports whether r replaced the best.
func (b *bestShort) offer(r *overviewer.AttemptResult) bool {
	if r == nil || r.Status != overviewer.AttemptShort {
		return false
	}
	if r.Length <= b.length() {
		return false
	}
	kept := *r
	kept.Document = nil
	b.result = &kept
	return true
}

// outcome returns the terminal error outcome for a ladder that never
// reached minLength.
func (b *bestShort) outcome(minLength int) *overviewer.Outcome {
	if b.result == nil {
		return &overviewer.Outcome{
			Status:  overviewer.OutcomeError,
			Reason:  overviewer.ReasonNotFound,
			Message: notFoundMessage,
		}
	}
	return &overviewer.Outcome{
		Status: overviewer.OutcomeError,
		Reason: overviewer.ReasonContentTooShort,
		Message: fmt.Sprintf("Scraped content was less than %d characters. Best found had %d chars from %s via %s.",
			minLength, b.result.Length, b.result.URL, b.result.Method),
		SourceURL: b.result.URL,
		Method:    b.result.Method,
		Length:    b.result.Length,
	}
}
