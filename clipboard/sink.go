// Package clipboard delivers the combined document to the system clipboard.
package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/citegrab"
)

// Ensure Sink implements citegrab.OutputSink at compile time.
var _ citegrab.OutputSink = (*Sink)(nil)

// Sink places the combined document on the system clipboard.
type Sink struct {
	write  func(string) error
	system bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithWriteFunc replaces the clipboard writer.
func WithWriteFunc(fn func(string) error) Option {
	return func(s *Sink) {
		s.write = fn
		s.system = false
	}
}

// NewSink creates a Sink backed by the system clipboard.
func NewSink(opts ...Option) *Sink {
	s := &Sink{write: clipboard.WriteAll, system: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver implements citegrab.OutputSink. The name is ignored.
func (s *Sink) Deliver(ctx context.Context, _ string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.system && clipboard.Unsupported {
		return citegrab.Errorf(citegrab.EINVALID, "clipboard is not supported on this system")
	}
	if err := s.write(content); err != nil {
		return citegrab.Errorf(citegrab.EINTERNAL, "writing clipboard: %v", err)
	}
	return nil
}

// Supported reports whether a system clipboard utility is available.
func Supported() bool {
	return !clipboard.Unsupported
}
