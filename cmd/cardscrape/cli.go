package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/pjanik/cardscrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher      cardscrape.Fetcher
	NewExtractor func(sel cardscrape.Selectors) (cardscrape.Extractor, error)
	NewWriter    func(format, path, sourceURL string) (cardscrape.RecordWriter, func() error, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape business name and email records from a web page"`
	Runs   RunsCmd   `cmd:"" help:"List scrape runs stored in a SQLite output file"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL           string  `arg:"" help:"Target URL to scrape"`
	Output        string  `short:"o" default:"marketing_list.csv" help:"Output file path"`
	Format        string  `enum:"csv,json,sqlite" default:"csv" help:"Output format"`
	CardSelector  string  `default:"div.business-card" help:"CSS selector for each business card"`
	NameSelector  string  `default:"h2" help:"CSS selector for the name within a card"`
	EmailSelector string  `default:"span.email" help:"CSS selector for the email within a card"`
	Profiles      string  `help:"Path to a YAML selector profiles file"`
	Profile       string  `help:"Named selector profile to use instead of selector flags"`
	Timeout       int     `default:"15" help:"Per-attempt HTTP timeout in seconds"`
	Retries       int     `default:"4" help:"Maximum fetch attempts, including the first"`
	Backoff       float64 `default:"0.7" help:"Backoff factor for exponential retry delays"`
	UserAgent     string  `help:"Override the HTTP User-Agent header"`
	Verbose       bool    `short:"v" help:"Enable verbose logs"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB string `arg:"" help:"SQLite file produced by 'scrape --format sqlite'"`
}
