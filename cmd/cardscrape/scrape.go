package main

import (
	"fmt"

	"github.com/pjanik/cardscrape"
	"github.com/pjanik/cardscrape/fs"
	"github.com/pjanik/cardscrape/yaml"
)

// Run executes the scrape command: fetch, extract, write.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sel, err := c.selectors()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	// Compile selectors before touching the network so configuration
	// errors surface without a fetch.
	extractor, err := deps.NewExtractor(sel)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("starting scrape", "url", c.URL)

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	records, err := extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		deps.Logger.Warn("no matching records found; check selectors and target HTML structure")
		fmt.Fprintln(deps.Stdout, "No records found.")
		return nil
	}

	output := fs.EnsureExtension(c.Output, c.Format)
	writer, closeWriter, err := deps.NewWriter(c.Format, output, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}
	defer func() {
		if cerr := closeWriter(); cerr != nil {
			deps.Logger.Error("failed to close writer", "err", cerr)
		}
	}()

	if err := writer.WriteRecords(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", len(records), output)
	return nil
}

// selectors resolves the selector set from a named profile or from the
// individual selector flags.
func (c *ScrapeCmd) selectors() (cardscrape.Selectors, error) {
	if c.Profile == "" {
		return cardscrape.Selectors{
			Card:  c.CardSelector,
			Name:  c.NameSelector,
			Email: c.EmailSelector,
		}, nil
	}

	if c.Profiles == "" {
		return cardscrape.Selectors{}, cardscrape.Errorf(cardscrape.EINVALID,
			"--profile requires --profiles pointing to a profiles file")
	}

	profiles, err := yaml.LoadProfiles(c.Profiles)
	if err != nil {
		return cardscrape.Selectors{}, err
	}
	return profiles.Lookup(c.Profile)
}
