package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citegrab"
)

// Ensure LoggingLinkSource implements citegrab.LinkSource.
var _ citegrab.LinkSource = (*LoggingLinkSource)(nil)

// LoggingLinkSource wraps a LinkSource with logging.
type LoggingLinkSource struct {
	next   citegrab.LinkSource
	logger *slog.Logger
}

// NewLoggingLinkSource creates a new LoggingLinkSource.
func NewLoggingLinkSource(next citegrab.LinkSource, logger *slog.Logger) *LoggingLinkSource {
	return &LoggingLinkSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingLinkSource) Discover(ctx context.Context) (records []citegrab.SourceRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("source discovery",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx)
}
