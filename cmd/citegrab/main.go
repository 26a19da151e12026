package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/aggregate"
	"github.com/fwojciec/citegrab/fs"
	"github.com/fwojciec/citegrab/goquery"
	"github.com/fwojciec/citegrab/htmltomarkdown"
	cghttp "github.com/fwojciec/citegrab/http"
	"github.com/fwojciec/citegrab/readability"
	"github.com/fwojciec/citegrab/rod"
	cgslog "github.com/fwojciec/citegrab/slog"
	"github.com/fwojciec/citegrab/trafilatura"
	cgyaml "github.com/fwojciec/citegrab/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// DefaultConfigPath is loaded when present.
const DefaultConfigPath = "~/.config/citegrab/config.yaml"

// Main represents the program.
type Main struct {
	// Stdin is read when the page is "-".
	Stdin io.Reader

	// ConfigPaths are YAML files consulted for flag defaults, in order.
	ConfigPaths []string

	browserFetcher *rod.Fetcher
	closers        []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:       os.Stdin,
		ConfigPaths: []string{DefaultConfigPath},
	}
}

// Close releases fetchers opened by Run.
func (m *Main) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	m.browserFetcher = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("citegrab"),
		kong.Description("Collect the sources cited on a chat answer page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.DefaultEnvars("CITEGRAB"),
		kong.Configuration(cgyaml.Loader, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'citegrab --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(cli.Verbose, stderr),
	}
	defer m.Close()

	var page PageFlags
	var fetch *FetchFlags
	switch strings.Fields(kongCtx.Command())[0] {
	case "list":
		page = cli.List.PageFlags
	case "download":
		page, fetch = cli.Download.PageFlags, &cli.Download.FetchFlags
	case "copy":
		page, fetch = cli.Copy.PageFlags, &cli.Copy.FetchFlags
	}

	if err := m.wireSources(deps, page, fetch); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorText(err))
		return err
	}
	if fetch != nil {
		if err := m.wireAggregator(deps, *fetch); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", errorText(err))
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireSources builds the page source and link discovery for the page flags.
func (m *Main) wireSources(deps *Dependencies, flags PageFlags, fetch *FetchFlags) error {
	var page citegrab.PageSource
	switch {
	case flags.Page == "-":
		page = fs.NewReaderPageSource(m.Stdin, flags.BaseURL)
	case isURL(flags.Page):
		var fetcher citegrab.Fetcher
		if flags.Render {
			f, err := m.browser(fetch)
			if err != nil {
				return err
			}
			fetcher = f
		} else {
			fetcher = m.httpFetcher(fetch)
		}
		page = cghttp.NewPageSource(cgslog.NewLoggingFetcher(fetcher, deps.Logger), flags.Page)
	default:
		page = fs.NewPageSource(flags.Page, flags.BaseURL)
	}

	if flags.Scope != "" {
		if err := goquery.ValidateScope(flags.Scope); err != nil {
			return err
		}
	}

	deps.Sources = cgslog.NewLoggingLinkSource(&goquery.LinkSource{
		Page:  page,
		Scope: flags.Scope,
	}, deps.Logger)
	return nil
}

// wireAggregator builds the fetch pipeline for the fetch flags.
func (m *Main) wireAggregator(deps *Dependencies, flags FetchFlags) error {
	var fetcher citegrab.Fetcher
	if flags.Browser {
		f, err := m.browser(&flags)
		if err != nil {
			return err
		}
		fetcher = f
	} else {
		fetcher = m.httpFetcher(&flags)
	}

	var extractor citegrab.Extractor
	switch flags.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	case "body":
		extractor = goquery.NewBodyExtractor()
	default:
		extractor = readability.NewExtractor()
	}

	format := citegrab.Format(flags.Format)
	if err := format.Validate(); err != nil {
		return err
	}

	deps.Aggregator = &aggregate.Aggregator{
		Fetcher:     cgslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor:   cgslog.NewLoggingExtractor(extractor, deps.Logger),
		Converter:   htmltomarkdown.NewConverter(htmltomarkdown.WithHeadingOffset(2)),
		Notifier:    &writerNotifier{w: deps.Stderr},
		Logger:      deps.Logger,
		Format:      format,
		Concurrency: flags.Concurrency,
		Stagger:     flags.Stagger,
	}
	return nil
}

func (m *Main) httpFetcher(flags *FetchFlags) *cghttp.Fetcher {
	var opts []cghttp.Option
	if flags != nil {
		opts = append(opts, cghttp.WithTimeout(flags.Timeout))
		if flags.UserAgent != "" {
			opts = append(opts, cghttp.WithUserAgent(flags.UserAgent))
		}
	}
	return cghttp.NewFetcher(opts...)
}

// browser starts a headless Chrome fetcher on first use. It is shared by
// the page source and the aggregator, and closed by m.Close.
func (m *Main) browser(flags *FetchFlags) (*rod.Fetcher, error) {
	if m.browserFetcher != nil {
		return m.browserFetcher, nil
	}
	var opts []rod.Option
	if flags != nil {
		opts = append(opts, rod.WithFetchTimeout(flags.Timeout))
	}
	f, err := rod.NewFetcher(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	m.browserFetcher = f
	m.closers = append(m.closers, f)
	return f, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
