package citegrab

import "context"

// DefaultOutputName is the file name used for the combined document.
const DefaultOutputName = "Combined_Sources.txt"

// OutputSink is the terminal destination of an aggregate document.
type OutputSink interface {
	// Deliver hands over the final content. The name is a suggested
	// file name; sinks that have no notion of files ignore it.
	Deliver(ctx context.Context, name string, content string) error
}

// Level is the severity of a notification.
type Level string

// Notification levels.
const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a user-facing message emitted during a run.
type Notification struct {
	Level Level
	Title string
	Text  string

	// Source is set for notifications about a single source.
	Source *SourceRecord
}

// Notifier delivers user-facing notifications.
type Notifier interface {
	Notify(n Notification)
}
