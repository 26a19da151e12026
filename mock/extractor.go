package mock

import "github.com/fwojciec/citegrab"

var _ citegrab.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of citegrab.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*citegrab.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*citegrab.ExtractResult, error) {
	return e.ExtractFn(html)
}
