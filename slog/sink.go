package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citegrab"
)

// Ensure LoggingSink implements citegrab.OutputSink.
var _ citegrab.OutputSink = (*LoggingSink)(nil)

// LoggingSink wraps an OutputSink with logging.
type LoggingSink struct {
	next   citegrab.OutputSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next citegrab.OutputSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Deliver delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Deliver(ctx context.Context, name string, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("deliver",
			"name", name,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Deliver(ctx, name, content)
}
