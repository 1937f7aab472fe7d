package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/pjanik/cardscrape"
	"github.com/pjanik/cardscrape/fs"
	csgoquery "github.com/pjanik/cardscrape/goquery"
	cshttp "github.com/pjanik/cardscrape/http"
	csslog "github.com/pjanik/cardscrape/slog"
	"github.com/pjanik/cardscrape/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardscrape"),
		kong.Description("Scrape business name and email data from a web page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Scrape.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger.With("run_id", uuid.NewString())

	// Wire command-specific dependencies based on command
	if cmd == "scrape" {
		policy := cardscrape.DefaultRetryPolicy()
		policy.MaxAttempts = cli.Scrape.Retries
		policy.BackoffFactor = cli.Scrape.Backoff

		opts := []cshttp.Option{
			cshttp.WithTimeout(time.Duration(cli.Scrape.Timeout) * time.Second),
			cshttp.WithRetryPolicy(policy),
		}
		if cli.Scrape.UserAgent != "" {
			opts = append(opts, cshttp.WithUserAgent(cli.Scrape.UserAgent))
		}

		fetcher := cshttp.NewFetcher(opts...)
		defer fetcher.Close()

		deps.Fetcher = csslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.NewExtractor = func(sel cardscrape.Selectors) (cardscrape.Extractor, error) {
			return csgoquery.NewExtractor(sel)
		}
		deps.NewWriter = newWriter
	}

	return kongCtx.Run(deps)
}

// newWriter builds the record writer for the chosen output format.
// The returned close function releases any resources the writer holds.
func newWriter(format, path, sourceURL string) (cardscrape.RecordWriter, func() error, error) {
	noop := func() error { return nil }

	switch format {
	case "csv":
		return fs.NewCSVWriter(path), noop, nil
	case "json":
		return fs.NewJSONWriter(path), noop, nil
	case "sqlite":
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, nil, err
		}
		return sqlite.NewWriter(sqlite.NewRunService(db), sourceURL), db.Close, nil
	default:
		return nil, nil, cardscrape.Errorf(cardscrape.EINVALID, "unsupported output format %q", format)
	}
}
