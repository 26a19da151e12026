package citegrab

// FetchResult is the outcome of fetching and extracting one source.
// Err is nil on success; otherwise the source contributed no text.
type FetchResult struct {
	Source      SourceRecord
	Title       string
	ContentHTML string
	Text        string
	Err         error
}

// Section is one source's part of an AggregateDocument.
type Section struct {
	Source SourceRecord
	Title  string
	Body   string // rendered text or markdown, empty on failure
	Hash   string
	Err    error
}

// Failed reports whether the section's source could not be fetched.
func (s *Section) Failed() bool {
	return s.Err != nil
}

// AggregateDocument is the combined output of one run.
// Sections are ordered by source number regardless of completion order.
type AggregateDocument struct {
	RunID    string
	Format   Format
	Sections []Section
}

// Failed returns the number of sections whose fetch failed.
func (d *AggregateDocument) Failed() int {
	var n int
	for i := range d.Sections {
		if d.Sections[i].Failed() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of sections fetched successfully.
func (d *AggregateDocument) Succeeded() int {
	return len(d.Sections) - d.Failed()
}

// Format selects how sections are rendered.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Validate returns an error if the format is not supported.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatMarkdown:
		return nil
	}
	return Errorf(EINVALID, "unsupported format %q", string(f))
}
