// Package readability provides a citegrab.Extractor that runs Mozilla's
// Readability heuristic to find the main article of a page.
package readability

import (
	"strings"

	"github.com/fwojciec/citegrab"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements citegrab.Extractor at compile time.
var _ citegrab.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scores the page's content blocks and returns the best article.
// Pages without markup yield an empty result.
func (e *Extractor) Extract(rawHTML string) (*citegrab.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &citegrab.ExtractResult{}, nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EINVALID, "readability: %v", err)
	}

	return &citegrab.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
		Text:        citegrab.NormalizeText(article.TextContent),
	}, nil
}
