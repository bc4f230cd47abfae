package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/overviewer"
)

// Ensure LoggingFetcher implements overviewer.Fetcher.
var _ overviewer.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   overviewer.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next overviewer.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (m *overviewer.Markup, err error) {
	defer func(begin time.Time) {
		var size int
		var encoding string
		if m != nil {
			size = len(m.Body)
			encoding = m.Encoding
		}
		requestLogger(ctx, f.logger).Debug("fetch",
			"url", url,
			"bytes", size,
			"encoding", encoding,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
