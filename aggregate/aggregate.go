// Package aggregate runs the fetch, extract and assemble pipeline over the
// discovered sources of one user action.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/citegrab"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Aggregator fetches every source concurrently, extracts its text and
// assembles one document in source-number order. The document is handed to
// the sink exactly once, after every source has resolved.
type Aggregator struct {
	Fetcher   citegrab.Fetcher
	Extractor citegrab.Extractor

	// Converter renders content HTML for FormatMarkdown.
	Converter citegrab.Converter

	// Notifier receives one notification per failed source and one on
	// completion. Optional.
	Notifier citegrab.Notifier

	// Logger receives debug output, including extraction failures that
	// are otherwise silent. Optional.
	Logger *slog.Logger

	Format citegrab.Format

	// Concurrency caps in-flight fetches. Zero fetches all sources at once.
	Concurrency int

	// Stagger spaces fetch dispatches by a fixed interval, so fetch i
	// starts no earlier than i*Stagger after the first. Zero disables it.
	Stagger time.Duration
}

// run holds the shared state of one Run.
type run struct {
	records []citegrab.SourceRecord
	results []citegrab.FetchResult
	pending atomic.Int64
	done    atomic.Bool

	doc *citegrab.AggregateDocument
	err error
}

// Run processes records and delivers the rendered document to sink under
// name. Failed sources never stop their siblings; they keep an annotated
// section and count toward completion. Run returns ENOTFOUND without
// fetching anything when records is empty.
func (a *Aggregator) Run(ctx context.Context, records []citegrab.SourceRecord, sink citegrab.OutputSink, name string) (*citegrab.AggregateDocument, error) {
	if len(records) == 0 {
		return nil, citegrab.Errorf(citegrab.ENOTFOUND, citegrab.NoSourcesMessage)
	}

	format := a.Format
	if format == "" {
		format = citegrab.FormatText
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format == citegrab.FormatMarkdown && a.Converter == nil {
		return nil, citegrab.Errorf(citegrab.EINVALID, "markdown format requires a converter")
	}

	runID := uuid.NewString()
	logger := a.logger().With("run", runID)
	notify := a.notifier()

	r := &run{
		records: records,
		results: make([]citegrab.FetchResult, len(records)),
	}
	r.pending.Store(int64(len(records)))

	finish := func() {
		// Delivery is single-fire.
		if !r.done.CompareAndSwap(false, true) {
			return
		}
		r.doc = a.assemble(runID, format, r.results)
		// The document is delivered even when the run was canceled.
		r.err = sink.Deliver(context.WithoutCancel(ctx), name, citegrab.FormatDocument(r.doc))
		logger.Debug("run complete",
			"sources", len(r.records),
			"failed", r.doc.Failed(),
			"err", r.err,
		)
		if r.err == nil {
			notify(citegrab.Notification{
				Level: citegrab.LevelInfo,
				Title: "Download Complete",
				Text:  completionText(r.doc),
			})
		}
	}

	complete := func(i int, result citegrab.FetchResult) {
		r.results[i] = result
		if result.Err != nil {
			src := result.Source
			notify(citegrab.Notification{
				Level:  citegrab.LevelError,
				Title:  "Download Error",
				Text:   fmt.Sprintf("Error downloading source %d: %s", src.Number, citegrab.ErrorMessage(result.Err)),
				Source: &src,
			})
		}
		if r.pending.Add(-1) == 0 {
			finish()
		}
	}

	var limiter *rate.Limiter
	if a.Stagger > 0 {
		limiter = rate.NewLimiter(rate.Every(a.Stagger), 1)
	}

	g := new(errgroup.Group)
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}

	for i, rec := range records {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				complete(i, citegrab.FetchResult{
					Source: rec,
					Err:    citegrab.Errorf(citegrab.EABORTED, "not dispatched: %v", err),
				})
				continue
			}
		}
		g.Go(func() error {
			complete(i, a.process(ctx, logger, rec, format))
			return nil
		})
	}
	_ = g.Wait()

	if r.err != nil {
		return r.doc, fmt.Errorf("delivering output: %w", r.err)
	}
	return r.doc, nil
}

// process fetches and extracts a single source.
func (a *Aggregator) process(ctx context.Context, logger *slog.Logger, rec citegrab.SourceRecord, format citegrab.Format) citegrab.FetchResult {
	result := citegrab.FetchResult{Source: rec}

	html, err := a.Fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		if citegrab.ErrorCode(err) == citegrab.EINTERNAL {
			err = citegrab.Errorf(citegrab.ENETWORK, "%v", err)
		}
		result.Err = err
		return result
	}

	extracted, err := a.Extractor.Extract(html)
	if err != nil || extracted == nil {
		logger.Debug("extraction failed", "source", rec.Number, "url", rec.URL, "err", err)
		return result
	}

	result.Title = extracted.Title
	result.ContentHTML = extracted.ContentHTML
	result.Text = extracted.Text

	if format == citegrab.FormatMarkdown && extracted.ContentHTML != "" {
		md, err := a.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			logger.Debug("markdown conversion failed", "source", rec.Number, "url", rec.URL, "err", err)
		} else {
			result.Text = md
		}
	}

	return result
}

// assemble orders sections by source number, independent of completion order.
func (a *Aggregator) assemble(runID string, format citegrab.Format, results []citegrab.FetchResult) *citegrab.AggregateDocument {
	doc := &citegrab.AggregateDocument{
		RunID:    runID,
		Format:   format,
		Sections: make([]citegrab.Section, len(results)),
	}
	for i, res := range results {
		doc.Sections[i] = citegrab.Section{
			Source: res.Source,
			Title:  res.Title,
			Body:   res.Text,
			Hash:   ComputeHash(res.Text),
			Err:    res.Err,
		}
	}
	return doc
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// notifier serializes notifications, which arrive from fetch goroutines.
func (a *Aggregator) notifier() func(citegrab.Notification) {
	if a.Notifier == nil {
		return func(citegrab.Notification) {}
	}
	var mu sync.Mutex
	return func(n citegrab.Notification) {
		mu.Lock()
		defer mu.Unlock()
		a.Notifier.Notify(n)
	}
}

func completionText(doc *citegrab.AggregateDocument) string {
	total := len(doc.Sections)
	if failed := doc.Failed(); failed > 0 {
		return fmt.Sprintf("All %d sources have been processed into a single document (%d failed).", total, failed)
	}
	return fmt.Sprintf("All %d sources have been processed into a single document.", total)
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
