package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/aggregate"
	"github.com/fwojciec/citegrab/fs"
	cgslog "github.com/fwojciec/citegrab/slog"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	if c.Manifest && c.Output == "-" {
		err := citegrab.Errorf(citegrab.EINVALID, "--manifest requires a file output, not stdout")
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	sink := deps.Sink
	if sink == nil {
		if c.Output == "-" {
			sink = &fs.WriterSink{W: deps.Stdout}
		} else {
			sink = fs.NewFileSink(c.Output)
		}
	}
	sink = cgslog.NewLoggingSink(sink, deps.Logger)

	doc, err := collect(deps, sink, c.Name)
	if err != nil || doc == nil {
		return err
	}

	if c.Manifest {
		manifest, err := aggregate.NewManifest(doc).Encode()
		if err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		if err := sink.Deliver(context.WithoutCancel(deps.Ctx), aggregate.ManifestName(c.Name), manifest); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
	}

	if c.Output != "-" {
		fmt.Fprintf(deps.Stdout, "Saved %d sources to %s\n", len(doc.Sections), filepath.Join(c.Output, c.Name))
	}
	return nil
}

// collect discovers sources and runs the aggregator into sink. It returns a
// nil document when there is nothing to fetch.
func collect(deps *Dependencies, sink citegrab.OutputSink, name string) (*citegrab.AggregateDocument, error) {
	records, err := deps.Sources.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return nil, err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, citegrab.NoSourcesMessage)
		return nil, nil
	}

	doc, err := deps.Aggregator.Run(deps.Ctx, records, sink, name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return doc, err
	}
	return doc, nil
}
