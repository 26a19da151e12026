package mock

import (
	"context"

	"github.com/fwojciec/citegrab"
)

var _ citegrab.OutputSink = (*OutputSink)(nil)

// OutputSink is a mock implementation of citegrab.OutputSink.
type OutputSink struct {
	DeliverFn func(ctx context.Context, name string, content string) error
}

func (s *OutputSink) Deliver(ctx context.Context, name string, content string) error {
	return s.DeliverFn(ctx, name, content)
}

var _ citegrab.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of citegrab.Notifier.
type Notifier struct {
	NotifyFn func(n citegrab.Notification)
}

func (n *Notifier) Notify(notification citegrab.Notification) {
	n.NotifyFn(notification)
}
