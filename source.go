package citegrab

import "context"

// SourceRecord is one deduplicated outbound link discovered in the
// rendered answer. Number is 1-based and dense in first-seen order.
type SourceRecord struct {
	Number int
	URL    string
}

// PageSource provides the rendered chat page that discovery reads from.
type PageSource interface {
	// HTML returns the current page markup and the URL relative links
	// resolve against. Each call reads the page fresh; nothing is cached
	// across calls.
	HTML(ctx context.Context) (html string, baseURL string, err error)
}

// LinkSource discovers the cited sources of a rendered answer.
type LinkSource interface {
	// Discover returns the unique source records in discovery order.
	// An empty slice means no sources were found and is not an error.
	// Failures to read or parse the page are returned as EDISCOVERY.
	Discover(ctx context.Context) ([]SourceRecord, error)
}
