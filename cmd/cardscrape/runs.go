package main

import (
	"fmt"
	"time"

	"github.com/pjanik/cardscrape"
	"github.com/pjanik/cardscrape/sqlite"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to open %s: %v\n", c.DB, err)
		return err
	}
	defer db.Close()

	runs, err := sqlite.NewRunService(db).FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardscrape.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'cardscrape scrape --format sqlite' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d records  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.RecordCount, r.SourceURL)
	}

	return nil
}
