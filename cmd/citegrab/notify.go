package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/citegrab"
)

// Ensure writerNotifier implements citegrab.Notifier at compile time.
var _ citegrab.Notifier = (*writerNotifier)(nil)

// writerNotifier prints notifications as single lines.
type writerNotifier struct {
	w io.Writer
}

func (n *writerNotifier) Notify(notification citegrab.Notification) {
	fmt.Fprintf(n.w, "%s: %s\n", notification.Title, notification.Text)
}

// errorText returns the user-facing message for err. Internal errors carry
// no application message, so their full text is shown instead.
func errorText(err error) string {
	if citegrab.ErrorCode(err) == citegrab.EINTERNAL {
		return err.Error()
	}
	return citegrab.ErrorMessage(err)
}
