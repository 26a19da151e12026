package main

import (
	"fmt"

	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/clipboard"
	cgslog "github.com/fwojciec/citegrab/slog"
)

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	sink := deps.Sink
	if sink == nil {
		sink = clipboard.NewSink()
	}
	sink = cgslog.NewLoggingSink(sink, deps.Logger)

	doc, err := collect(deps, sink, citegrab.DefaultOutputName)
	if err != nil || doc == nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Copied %d sources to the clipboard\n", len(doc.Sections))
	return nil
}
