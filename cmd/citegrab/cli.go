package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/aggregate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sources    citegrab.LinkSource
	Aggregator *aggregate.Aggregator

	// Sink overrides the command's default output sink.
	Sink citegrab.OutputSink
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool            `short:"v" help:"Log operations to stderr"`
	Config  kong.ConfigFlag `help:"Path to a YAML config file"`

	List     ListCmd     `cmd:"" help:"List the unique sources cited on a chat page"`
	Download DownloadCmd `cmd:"" help:"Fetch every source and save the combined text to a file"`
	Copy     CopyCmd     `cmd:"" help:"Fetch every source and copy the combined text to the clipboard"`
}

// PageFlags select the chat page to read.
type PageFlags struct {
	Page    string `short:"p" required:"" help:"Chat page to read: file path, http(s) URL, or - for stdin"`
	BaseURL string `name:"base-url" help:"Base URL for relative links in file or stdin pages"`
	Render  bool   `help:"Render URL pages in headless Chrome before reading"`
	Scope   string `help:"CSS selector for candidate source anchors (default: detected from the page)"`
}

// FetchFlags configure how sources are fetched and rendered.
type FetchFlags struct {
	Extractor   string        `default:"readability" enum:"readability,trafilatura,body" help:"Text extraction strategy (${enum})"`
	Format      string        `default:"text" enum:"text,markdown" help:"Output format (${enum})"`
	Timeout     time.Duration `default:"10s" help:"Per-source fetch timeout"`
	Stagger     time.Duration `default:"0s" help:"Delay between successive fetch dispatches"`
	Concurrency int           `short:"c" default:"0" help:"Concurrent fetch limit (0 fetches all at once)"`
	Browser     bool          `help:"Fetch sources with headless Chrome"`
	UserAgent   string        `name:"user-agent" help:"User-Agent header for HTTP fetches"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	PageFlags `embed:""`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	PageFlags  `embed:""`
	FetchFlags `embed:""`

	Output   string `short:"o" default:"." help:"Output directory, or - for stdout"`
	Name     string `default:"Combined_Sources.txt" help:"Output file name"`
	Manifest bool   `help:"Also write a JSON manifest next to the output file"`
}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	PageFlags  `embed:""`
	FetchFlags `embed:""`
}
