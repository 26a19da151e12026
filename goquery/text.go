package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/citegrab"
	"golang.org/x/net/html"
)

// Ensure BodyExtractor implements citegrab.Extractor at compile time.
var _ citegrab.Extractor = (*BodyExtractor)(nil)

// BodyExtractor returns the visible text of the whole document body,
// approximating the browser's innerText. It does no boilerplate removal.
type BodyExtractor struct{}

// NewBodyExtractor creates a new BodyExtractor.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

// Extract implements citegrab.Extractor.
func (e *BodyExtractor) Extract(rawHTML string) (*citegrab.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, template, svg, head").Remove()

	return &citegrab.ExtractResult{
		Title: title,
		Text:  VisibleText(doc.Find("body")),
	}, nil
}

// blockElements start and end a line in rendered text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// VisibleText renders the text of the selection with one line per block
// element. Runs of whitespace inside a line collapse to a single space,
// blank lines are dropped.
func VisibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteString("\n")
			return
		case "td", "th":
			b.WriteString(" ")
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}
