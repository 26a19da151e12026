package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Profile names a chat application layout and the anchors that count as
// cited sources in it.
type Profile struct {
	Name  string
	Scope string
}

// Known profiles.
var (
	// ProfilePerplexity matches new-tab anchors inside rendered answer
	// blocks, whose containers carry a "prose" class prefix.
	ProfilePerplexity = Profile{
		Name:  "perplexity",
		Scope: `div[class^="prose"] a[target="_blank"]`,
	}

	// ProfileGeneric matches any anchor with a target attribute.
	ProfileGeneric = Profile{
		Name:  "generic",
		Scope: `a[target]`,
	}
)

// DefaultScope is the anchor selector used when no profile can be detected
// from the page URL alone.
var DefaultScope = ProfilePerplexity.Scope

// Detector identifies the chat application that rendered a page.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the profile for the page. The page URL is checked first,
// then site metadata, then structural markers. Pages that match nothing
// get ProfileGeneric.
func (d *Detector) Detect(html string, pageURL string) Profile {
	if u, err := url.Parse(pageURL); err == nil && isPerplexityHost(u.Hostname()) {
		return ProfilePerplexity
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ProfileGeneric
	}

	siteName := strings.ToLower(doc.Find(`meta[property="og:site_name"]`).AttrOr("content", ""))
	if strings.Contains(siteName, "perplexity") {
		return ProfilePerplexity
	}

	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		if u, err := url.Parse(canonical); err == nil && isPerplexityHost(u.Hostname()) {
			return ProfilePerplexity
		}
	}

	if d.hasSelector(doc, `div[class^="prose"] a[target="_blank"]`) {
		return ProfilePerplexity
	}

	return ProfileGeneric
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func isPerplexityHost(host string) bool {
	host = strings.ToLower(host)
	return host == "perplexity.ai" || strings.HasSuffix(host, ".perplexity.ai")
}
