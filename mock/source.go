package mock

import (
	"context"

	"github.com/fwojciec/citegrab"
)

var _ citegrab.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of citegrab.PageSource.
type PageSource struct {
	HTMLFn func(ctx context.Context) (string, string, error)
}

func (p *PageSource) HTML(ctx context.Context) (string, string, error) {
	return p.HTMLFn(ctx)
}

var _ citegrab.LinkSource = (*LinkSource)(nil)

// LinkSource is a mock implementation of citegrab.LinkSource.
type LinkSource struct {
	DiscoverFn func(ctx context.Context) ([]citegrab.SourceRecord, error)
}

func (s *LinkSource) Discover(ctx context.Context) ([]citegrab.SourceRecord, error) {
	return s.DiscoverFn(ctx)
}
