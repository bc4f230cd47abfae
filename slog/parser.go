package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/overviewer"
)

// Ensure LoggingParser implements overviewer.Parser.
var _ overviewer.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   overviewer.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next overviewer.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(m *overviewer.Markup) (doc overviewer.Document, err error) {
	defer func(begin time.Time) {
		var size int
		var encoding string
		if m != nil {
			size = len(m.Body)
			encoding = m.Encoding
		}
		p.logger.Debug("parse",
			"bytes", size,
			"encoding", encoding,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(m)
}
