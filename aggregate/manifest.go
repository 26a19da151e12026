package aggregate

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/fwojciec/citegrab"
)

// Manifest describes the sections of a delivered document.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Format  citegrab.Format `json:"format"`
	Total   int             `json:"total"`
	Failed  int             `json:"failed"`
	Sources []ManifestEntry `json:"sources"`
}

// ManifestEntry is one source's line in a Manifest.
type ManifestEntry struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Bytes  int    `json:"bytes"`
	Hash   string `json:"hash,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewManifest builds the manifest for doc.
func NewManifest(doc *citegrab.AggregateDocument) *Manifest {
	m := &Manifest{
		RunID:   doc.RunID,
		Format:  doc.Format,
		Total:   len(doc.Sections),
		Failed:  doc.Failed(),
		Sources: make([]ManifestEntry, len(doc.Sections)),
	}
	for i := range doc.Sections {
		s := &doc.Sections[i]
		entry := ManifestEntry{
			Number: s.Source.Number,
			URL:    s.Source.URL,
			Title:  s.Title,
		}
		if s.Failed() {
			entry.Error = string(citegrab.FailureKindOf(s.Err)) + ": " + citegrab.ErrorMessage(s.Err)
		} else {
			entry.Bytes = len(s.Body)
			entry.Hash = s.Hash
		}
		m.Sources[i] = entry
	}
	return m
}

// Encode renders the manifest as indented JSON.
func (m *Manifest) Encode() (string, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// ManifestName derives the manifest file name from the document name.
// Example: Combined_Sources.txt → Combined_Sources.manifest.json
func ManifestName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".manifest.json"
}
