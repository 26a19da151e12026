// Package trafilatura provides a citegrab.Extractor backed by go-trafilatura,
// an alternative to the readability heuristic that also falls back to
// readability and dom-distiller internally.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/citegrab"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements citegrab.Extractor at compile time.
var _ citegrab.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
// Pages without markup yield an empty result.
func (e *Extractor) Extract(rawHTML string) (*citegrab.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &citegrab.ExtractResult{}, nil
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EINVALID, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &citegrab.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
		Text:        citegrab.NormalizeText(result.ContentText),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
