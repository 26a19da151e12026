package citegrab

import (
	"fmt"
	"strings"
)

// NoSourcesMessage is shown when discovery finds nothing to fetch.
const NoSourcesMessage = "No sources found."

// FormatSources formats records as "[N] url" lines for display.
func FormatSources(records []SourceRecord) string {
	if len(records) == 0 {
		return NoSourcesMessage
	}

	var b strings.Builder
	b.WriteString("Unique Sources:\n\n")
	for _, r := range records {
		fmt.Fprintf(&b, "[%d] %s\n", r.Number, r.URL)
	}
	return b.String()
}

// FormatDocument renders the aggregate document as a single string.
// Every source keeps its section in number order. Failed sources get a
// one-line note instead of a body; empty extractions get an empty body.
func FormatDocument(doc *AggregateDocument) string {
	var b strings.Builder
	for i := range doc.Sections {
		s := &doc.Sections[i]
		switch doc.Format {
		case FormatMarkdown:
			writeMarkdownSection(&b, s)
		default:
			writeTextSection(&b, s)
		}
	}
	return b.String()
}

func writeTextSection(b *strings.Builder, s *Section) {
	fmt.Fprintf(b, "\n\n--- Source %d ---\n\n", s.Source.Number)
	if s.Failed() {
		b.WriteString(failureNote(s))
		return
	}
	b.WriteString(s.Body)
}

func writeMarkdownSection(b *strings.Builder, s *Section) {
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	header := s.Title
	if header == "" {
		header = s.Source.URL
	}
	fmt.Fprintf(b, "## [%d] %s\n\nSource: <%s>\n\n", s.Source.Number, header, s.Source.URL)
	if s.Failed() {
		b.WriteString("> ")
		b.WriteString(failureNote(s))
		return
	}
	b.WriteString(s.Body)
}

func failureNote(s *Section) string {
	return fmt.Sprintf("(source unavailable: %s: %s)", FailureKindOf(s.Err), ErrorMessage(s.Err))
}
