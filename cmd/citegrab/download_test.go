package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/aggregate"
	main "github.com/fwojciec/citegrab/cmd/citegrab"
	"github.com/fwojciec/citegrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphAggregator(fetch func(ctx context.Context, url string) (string, error)) *aggregate.Aggregator {
	return &aggregate.Aggregator{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*citegrab.ExtractResult, error) {
				return &citegrab.ExtractResult{Text: strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>")}, nil
			},
		},
	}
}

func TestDownloadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes combined file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: discardLogger(),
			Sources: staticSources(
				citegrab.SourceRecord{Number: 1, URL: "https://a.example"},
				citegrab.SourceRecord{Number: 2, URL: "https://b.example"},
			),
			Aggregator: paragraphAggregator(func(_ context.Context, url string) (string, error) {
				return "<p>text of " + url + "</p>", nil
			}),
		}

		cmd := &main.DownloadCmd{Output: dir, Name: citegrab.DefaultOutputName}
		err := cmd.Run(deps)

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, citegrab.DefaultOutputName))
		require.NoError(t, err)
		assert.Equal(t, "\n\n--- Source 1 ---\n\ntext of https://a.example\n\n--- Source 2 ---\n\ntext of https://b.example", string(got))
		assert.Contains(t, stdout.String(), "Saved 2 sources")
	})

	t.Run("writes manifest when requested", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Logger:  discardLogger(),
			Sources: staticSources(citegrab.SourceRecord{Number: 1, URL: "https://a.example"}),
			Aggregator: paragraphAggregator(func(_ context.Context, _ string) (string, error) {
				return "<p>hello</p>", nil
			}),
		}

		cmd := &main.DownloadCmd{Output: dir, Name: "notes.txt", Manifest: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		manifest, err := os.ReadFile(filepath.Join(dir, "notes.manifest.json"))
		require.NoError(t, err)
		assert.Contains(t, string(manifest), `"url": "https://a.example"`)
		assert.Contains(t, string(manifest), `"bytes": 5`)
	})

	t.Run("writes to stdout with dash output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Logger:  discardLogger(),
			Sources: staticSources(citegrab.SourceRecord{Number: 1, URL: "https://a.example"}),
			Aggregator: paragraphAggregator(func(_ context.Context, _ string) (string, error) {
				return "<p>hello</p>", nil
			}),
		}

		cmd := &main.DownloadCmd{Output: "-", Name: citegrab.DefaultOutputName}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "\n\n--- Source 1 ---\n\nhello", stdout.String())
	})

	t.Run("issues no fetch when no sources found", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Logger:  discardLogger(),
			Sources: staticSources(),
			Aggregator: paragraphAggregator(func(_ context.Context, _ string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			}),
			Sink: &mock.OutputSink{
				DeliverFn: func(_ context.Context, _ string, _ string) error {
					t.Fatal("sink must not be called")
					return nil
				},
			},
		}

		err := (&main.DownloadCmd{Output: t.TempDir(), Name: citegrab.DefaultOutputName}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No sources found.\n", stdout.String())
	})

	t.Run("reports failed sources and still delivers", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		var delivered string
		agg := paragraphAggregator(func(_ context.Context, url string) (string, error) {
			if url == "https://b.example" {
				return "", citegrab.Errorf(citegrab.ETIMEOUT, "request timed out")
			}
			return "<p>ok</p>", nil
		})
		agg.Notifier = &mock.Notifier{
			NotifyFn: func(n citegrab.Notification) {
				stderr.WriteString(n.Title + ": " + n.Text + "\n")
			},
		}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: discardLogger(),
			Sources: staticSources(
				citegrab.SourceRecord{Number: 1, URL: "https://a.example"},
				citegrab.SourceRecord{Number: 2, URL: "https://b.example"},
			),
			Aggregator: agg,
			Sink: &mock.OutputSink{
				DeliverFn: func(_ context.Context, _ string, content string) error {
					delivered = content
					return nil
				},
			},
		}

		err := (&main.DownloadCmd{Output: "unused", Name: citegrab.DefaultOutputName}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, delivered, "--- Source 1 ---\n\nok")
		assert.Contains(t, delivered, "(source unavailable: timeout: request timed out)")
		assert.Contains(t, stderr.String(), "Error downloading source 2: request timed out")
		assert.Contains(t, stderr.String(), "(1 failed)")
	})

	t.Run("returns sink failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Logger:  discardLogger(),
			Sources: staticSources(citegrab.SourceRecord{Number: 1, URL: "https://a.example"}),
			Aggregator: paragraphAggregator(func(_ context.Context, _ string) (string, error) {
				return "<p>ok</p>", nil
			}),
			Sink: &mock.OutputSink{
				DeliverFn: func(_ context.Context, _ string, _ string) error {
					return errors.New("read-only file system")
				},
			},
		}

		err := (&main.DownloadCmd{Output: "unused", Name: citegrab.DefaultOutputName}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "read-only file system")
	})

	t.Run("rejects manifest with stdout output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Logger:  discardLogger(),
			Sources: staticSources(citegrab.SourceRecord{Number: 1, URL: "https://a.example"}),
			Aggregator: paragraphAggregator(func(_ context.Context, _ string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			}),
		}

		err := (&main.DownloadCmd{Output: "-", Name: citegrab.DefaultOutputName, Manifest: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, citegrab.EINVALID, citegrab.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "--manifest requires a file output")
	})
}
