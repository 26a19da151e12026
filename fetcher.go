package citegrab

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations report failures with ETIMEOUT, EABORTED or ENETWORK codes.
type Fetcher interface {
	// Fetch issues a single GET for the URL and returns the markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FailureKind classifies why a source contributed no text.
type FailureKind string

// Failure kinds reported per source.
const (
	FailureNone    FailureKind = ""
	FailureTimeout FailureKind = "timeout"
	FailureAborted FailureKind = "aborted"
	FailureNetwork FailureKind = "network"
)

// FailureKindOf maps a fetch error to its failure kind.
// Errors without a fetch code are treated as network failures.
func FailureKindOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	switch ErrorCode(err) {
	case ETIMEOUT:
		return FailureTimeout
	case EABORTED:
		return FailureAborted
	default:
		return FailureNetwork
	}
}
