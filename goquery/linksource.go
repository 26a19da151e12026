package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/bloom"
)

// Ensure LinkSource implements citegrab.LinkSource at compile time.
var _ citegrab.LinkSource = (*LinkSource)(nil)

// LinkSource discovers cited sources by querying the rendered page for
// anchors inside the answer region that open in a new browsing context.
type LinkSource struct {
	// Page supplies the rendered markup. It is read fresh on every call.
	Page citegrab.PageSource

	// Scope is the CSS selector for candidate anchors. When empty the
	// chat profile is detected from the page.
	Scope string

	// Detector picks the profile when Scope is empty.
	// Defaults to a new Detector.
	Detector *Detector
}

// Discover implements citegrab.LinkSource.
func (s *LinkSource) Discover(ctx context.Context) ([]citegrab.SourceRecord, error) {
	html, baseURL, err := s.Page.HTML(ctx)
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EDISCOVERY, "reading page: %v", err)
	}

	scope := s.Scope
	if scope == "" {
		detector := s.Detector
		if detector == nil {
			detector = NewDetector()
		}
		scope = detector.Detect(html, baseURL).Scope
	}

	return ExtractSources(html, baseURL, scope)
}

// ExtractSources returns the unique sources linked from anchors matching
// scope, numbered from 1 in document order. Anchors must open a new
// browsing context and point at an http(s) URL; relative hrefs are
// resolved against the document's <base href> and then baseURL.
func ExtractSources(html string, baseURL string, scope string) ([]citegrab.SourceRecord, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EDISCOVERY, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EDISCOVERY, "failed to parse HTML: %v", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	anchors, err := findAnchors(doc, scope)
	if err != nil {
		return nil, err
	}

	seen := bloom.NewSet(uint(anchors.Length()), 0.01)
	records := []citegrab.SourceRecord{}

	anchors.Each(func(_ int, sel *goquery.Selection) {
		if !opensNewContext(sel) {
			return
		}

		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		// Skip non-navigational links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if seen.Add(resolved) {
			records = append(records, citegrab.SourceRecord{
				Number: len(records) + 1,
				URL:    resolved,
			})
		}
	})

	return records, nil
}

// ValidateScope reports whether scope is a valid CSS selector.
func ValidateScope(scope string) error {
	if _, err := cascadia.Compile(scope); err != nil {
		return citegrab.Errorf(citegrab.EINVALID, "invalid scope selector %q: %v", scope, err)
	}
	return nil
}

// findAnchors runs the scope selector. goquery silently matches nothing
// for an invalid selector, so the selector is compiled up front.
func findAnchors(doc *goquery.Document, scope string) (*goquery.Selection, error) {
	matcher, err := cascadia.Compile(scope)
	if err != nil {
		return nil, citegrab.Errorf(citegrab.EDISCOVERY, "invalid scope selector %q: %v", scope, err)
	}
	return doc.FindMatcher(matcher).Filter("a"), nil
}

// opensNewContext reports whether the anchor's target names a browsing
// context other than the current one.
func opensNewContext(sel *goquery.Selection) bool {
	target := strings.ToLower(strings.TrimSpace(sel.AttrOr("target", "")))
	switch target {
	case "", "_self", "_parent", "_top":
		return false
	}
	return true
}

// resolveURL resolves href against base and returns the absolute URL.
// Returns empty string if the result is not an absolute http(s) URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
