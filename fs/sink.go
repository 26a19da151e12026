// Package fs provides file-based output sinks and page sources.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/citegrab"
)

// Ensure FileSink implements citegrab.OutputSink at compile time.
var _ citegrab.OutputSink = (*FileSink)(nil)

// FileSink writes the combined document to a file in a directory.
// The file is written to a temporary name and renamed into place, so a
// reader never sees a partial document.
type FileSink struct {
	dir string

	// Path is set to the written file after a successful Deliver.
	Path string
}

// NewFileSink creates a FileSink that writes into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Deliver writes content to dir/name. An empty name uses
// citegrab.DefaultOutputName. Names must not contain path separators.
func (s *FileSink) Deliver(ctx context.Context, name string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		name = citegrab.DefaultOutputName
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return citegrab.Errorf(citegrab.EINVALID, "invalid output name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	s.Path = path
	return nil
}

// Ensure WriterSink implements citegrab.OutputSink at compile time.
var _ citegrab.OutputSink = (*WriterSink)(nil)

// WriterSink writes the combined document to a writer, typically stdout.
// The name is ignored.
type WriterSink struct {
	W io.Writer
}

// Deliver implements citegrab.OutputSink.
func (s *WriterSink) Deliver(_ context.Context, _ string, content string) error {
	_, err := io.WriteString(s.W, content)
	return err
}
