package slog

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/overviewer"
)

// Ensure Observer implements overviewer.Observer.
var _ overviewer.Observer = (*Observer)(nil)

// Observer logs the progress of a resolve.
type Observer struct {
	logger *slog.Logger
}

// NewObserver creates a new Observer.
func NewObserver(logger *slog.Logger) *Observer {
	return &Observer{logger: logger}
}

// OnAttempt logs every executed attempt. Failed attempts log at warn level.
func (o *Observer) OnAttempt(ctx context.Context, r *overviewer.AttemptResult) {
	logger := requestLogger(ctx, o.logger)
	switch r.Status {
	case overviewer.AttemptFailedFetch:
		logger.Warn("attempt",
			"url", r.URL,
			"method", r.Method,
			"status", r.Status,
			"failure", overviewer.FetchFailureOf(r.Err),
			"err", r.Err,
		)
	case overviewer.AttemptFailedParse:
		logger.Warn("attempt",
			"url", r.URL,
			"method", r.Method,
			"status", r.Status,
			"err", r.Err,
		)
	default:
		logger.Info("attempt",
			"url", r.URL,
			"method", r.Method,
			"status", r.Status,
			"length", r.Length,
		)
	}
}

// OnSkip logs attempts skipped because they already ran.
func (o *Observer) OnSkip(ctx context.Context, key overviewer.AttemptKey) {
	requestLogger(ctx, o.logger).Debug("attempt skipped",
		"url", key.URL,
		"method", key.Method,
	)
}

// OnDiscover logs the subpages found on a page.
func (o *Observer) OnDiscover(ctx context.Context, baseURL string, method overviewer.FetchMethod, subpages []string) {
	requestLogger(ctx, o.logger).Info("subpages discovered",
		"url", baseURL,
		"method", method,
		"count", len(subpages),
		"subpages", subpages,
	)
}

// OnOutcome logs the final outcome.
func (o *Observer) OnOutcome(ctx context.Context, outcome *overviewer.Outcome) {
	logger := requestLogger(ctx, o.logger)
	if outcome.Status == overviewer.OutcomeSuccess {
		logger.Info("outcome",
			"status", outcome.Status,
			"source_url", outcome.SourceURL,
			"method", outcome.Method,
			"length", utf8.RuneCountInString(outcome.Content),
		)
		return
	}
	logger.Warn("outcome",
		"status", outcome.Status,
		"reason", outcome.Reason,
		"source_url", outcome.SourceURL,
		"method", outcome.Method,
		"length", outcome.Length,
	)
}
