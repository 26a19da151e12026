// Package htmltomarkdown renders extracted source content as Markdown.
package htmltomarkdown

import (
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/citegrab"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements citegrab.Converter at compile time.
var _ citegrab.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv          *converter.Converter
	headingOffset int
}

// Option configures a Converter.
type Option func(*Converter)

// WithHeadingOffset demotes every heading by n levels, capped at h6, so
// source headings nest below the section heading of the combined document.
func WithHeadingOffset(n int) Option {
	return func(c *Converter) {
		c.headingOffset = n
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
// Blank input converts to an empty string.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	if c.headingOffset > 0 {
		shifted, err := shiftHeadings(html, c.headingOffset)
		if err != nil {
			return "", err
		}
		html = shifted
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", citegrab.Errorf(citegrab.EINVALID, "converting to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}

var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// shiftHeadings renames h1..h6 elements n levels down.
func shiftHeadings(html string, n int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", citegrab.Errorf(citegrab.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		level, _ := strconv.Atoi(strings.TrimPrefix(node.Data, "h"))
		level = min(level+n, 6)
		node.DataAtom = headingAtoms[level-1]
		node.Data = node.DataAtom.String()
	})

	return doc.Find("body").Html()
}
