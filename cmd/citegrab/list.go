package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/citegrab"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records, err := deps.Sources.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	out := citegrab.FormatSources(records)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
