package citegrab

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	// Strategies that only produce text leave it empty.
	ContentHTML string

	// Text is the plain readable text of the main content.
	Text string
}

// Extractor extracts readable content from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// A page without confident content yields an empty Text, not an error.
	Extract(html string) (*ExtractResult, error)
}
