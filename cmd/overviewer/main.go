package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/overviewer"
	"github.com/fwojciec/overviewer/goquery"
	ovhttp "github.com/fwojciec/overviewer/http"
	"github.com/fwojciec/overviewer/rod"
	"github.com/fwojciec/overviewer/scrape"
	ovslog "github.com/fwojciec/overviewer/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Resolver replaces the scraper wired from flags. Used for end-to-end
	// testing.
	Resolver overviewer.Resolver
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("overviewer"),
		kong.Description("Extract the main descriptive text of a website."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'overviewer --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel, cli.LogFormat)
	deps.Resolver = m.Resolver
	if deps.Resolver == nil {
		deps.Resolver = newScraper(cli, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newScraper wires the escalation ladder from the global flags.
func newScraper(cli *CLI, logger *slog.Logger) *scrape.Scraper {
	s := &scrape.Scraper{
		Static: ovslog.NewLoggingFetcher(
			ovhttp.NewFetcher(ovhttp.WithTimeout(cli.StaticTimeout)),
			logger.With("method", overviewer.MethodStatic),
		),
		Parser:           ovslog.NewLoggingParser(goquery.NewParser(), logger),
		Observer:         ovslog.NewObserver(logger),
		MinContentLength: cli.MinLength,
	}
	if !cli.NoBrowser {
		s.Browsers = ovslog.NewLoggingLauncher(
			rod.NewLauncher(
				rod.WithNavigationTimeout(cli.NavigationTimeout),
				rod.WithSettleDelay(cli.SettleDelay),
				rod.WithStealth(cli.Stealth),
				rod.WithNoSandbox(cli.NoSandbox),
				rod.WithBin(cli.ChromeBin),
			),
			logger.With("method", overviewer.MethodDynamic),
		)
	}
	return s
}

// newLogger returns a logger writing to w in the given level and format.
// Unknown values fall back to info and text.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
