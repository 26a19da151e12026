package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/citegrab"
)

// Ensure LoggingExtractor implements citegrab.Extractor.
var _ citegrab.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   citegrab.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next citegrab.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (result *citegrab.ExtractResult, err error) {
	defer func(begin time.Time) {
		var title string
		var chars int
		if result != nil {
			title = result.Title
			chars = len(result.Text)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"title", title,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
