package http

import (
	"context"

	"github.com/fwojciec/citegrab"
)

// Ensure PageSource implements citegrab.PageSource at compile time.
var _ citegrab.PageSource = (*PageSource)(nil)

// PageSource reads the chat page from a URL through a Fetcher.
// Pass a rod.Fetcher for pages whose answer is rendered client-side.
type PageSource struct {
	fetcher citegrab.Fetcher
	url     string
}

// NewPageSource creates a PageSource for the page at url.
func NewPageSource(fetcher citegrab.Fetcher, url string) *PageSource {
	return &PageSource{fetcher: fetcher, url: url}
}

// HTML fetches the page on every call. The page URL is the base URL.
func (p *PageSource) HTML(ctx context.Context) (string, string, error) {
	html, err := p.fetcher.Fetch(ctx, p.url)
	if err != nil {
		return "", "", err
	}
	return html, p.url, nil
}
