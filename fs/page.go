package fs

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/fwojciec/citegrab"
)

// Ensure PageSource implements citegrab.PageSource at compile time.
var _ citegrab.PageSource = (*PageSource)(nil)

// PageSource reads a saved chat page from disk. The file is read again on
// every call, so edits between calls are picked up.
type PageSource struct {
	path    string
	baseURL string
}

// NewPageSource creates a PageSource for the file at path. Relative links
// are resolved against baseURL, which may be empty.
func NewPageSource(path, baseURL string) *PageSource {
	return &PageSource{path: path, baseURL: baseURL}
}

// HTML implements citegrab.PageSource.
func (p *PageSource) HTML(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", citegrab.Errorf(citegrab.ENOTFOUND, "page file not found: %s", p.path)
		}
		return "", "", err
	}
	return string(b), p.baseURL, nil
}

// Ensure ReaderPageSource implements citegrab.PageSource at compile time.
var _ citegrab.PageSource = (*ReaderPageSource)(nil)

// ReaderPageSource reads a page from a stream such as stdin. A stream can
// only be consumed once, so the first read is kept and returned on later
// calls.
type ReaderPageSource struct {
	r       io.Reader
	baseURL string

	once sync.Once
	html string
	err  error
}

// NewReaderPageSource creates a ReaderPageSource over r.
func NewReaderPageSource(r io.Reader, baseURL string) *ReaderPageSource {
	return &ReaderPageSource{r: r, baseURL: baseURL}
}

// HTML implements citegrab.PageSource.
func (p *ReaderPageSource) HTML(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	p.once.Do(func() {
		b, err := io.ReadAll(p.r)
		p.html, p.err = string(b), err
	})
	if p.err != nil {
		return "", "", p.err
	}
	return p.html, p.baseURL, nil
}
