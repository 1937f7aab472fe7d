package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/pjanik/cardscrape/cmd/cardscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	// Parse --help (Kong writes help to stdout)
	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"scrape", "runs"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ScrapeDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"scrape", "https://example.com/directory"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/directory", cli.Scrape.URL)
	assert.Equal(t, "marketing_list.csv", cli.Scrape.Output)
	assert.Equal(t, "csv", cli.Scrape.Format)
	assert.Equal(t, "div.business-card", cli.Scrape.CardSelector)
	assert.Equal(t, "h2", cli.Scrape.NameSelector)
	assert.Equal(t, "span.email", cli.Scrape.EmailSelector)
	assert.Equal(t, 15, cli.Scrape.Timeout)
	assert.Equal(t, 4, cli.Scrape.Retries)
	assert.InDelta(t, 0.7, cli.Scrape.Backoff, 0.001)
}

func TestCLI_ScrapeRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"scrape", "https://example.com", "--format", "xml"})
	require.Error(t, err)
}
