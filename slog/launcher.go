package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/overviewer"
)

// Ensure LoggingLauncher implements overviewer.BrowserLauncher.
var _ overviewer.BrowserLauncher = (*LoggingLauncher)(nil)

// LoggingLauncher wraps a BrowserLauncher, logging browser launches and
// shutdowns. Launched browsers log their fetches like LoggingFetcher.
type LoggingLauncher struct {
	next   overviewer.BrowserLauncher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next overviewer.BrowserLauncher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch delegates to the wrapped launcher and logs the operation.
func (l *LoggingLauncher) Launch(ctx context.Context) (f overviewer.Fetcher, err error) {
	logger := requestLogger(ctx, l.logger)
	defer func(begin time.Time) {
		logger.Info("browser launch",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	f, err = l.next.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return &loggingBrowser{
		LoggingFetcher: NewLoggingFetcher(f, l.logger),
		logger:         logger,
		launched:       time.Now(),
	}, nil
}

// loggingBrowser logs the shutdown of a launched browser.
type loggingBrowser struct {
	*LoggingFetcher
	logger   *slog.Logger
	launched time.Time
}

func (b *loggingBrowser) Close() (err error) {
	defer func() {
		b.logger.Info("browser close",
			"lifetime", time.Since(b.launched),
			"err", err,
		)
	}()
	return b.LoggingFetcher.Close()
}
