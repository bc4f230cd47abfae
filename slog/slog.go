// Package slog decorates overviewer services with structured logging.
package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/overviewer"
)

// requestLogger adds the request ID carried by ctx, if any.
func requestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := overviewer.RequestIDFromContext(ctx); id != "" {
		return logger.With("request_id", id)
	}
	return logger
}
