package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/leaders"
	"github.com/fwojciec/leaders/fs"
	"github.com/fwojciec/leaders/sqlite"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	db, err := openDB(c.DB)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer db.Close()

	runs, err := sqlite.NewStore(db).FindRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'leaders crawl --db' to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d leaders  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Leaders, strings.Join(r.Countries, ","))
	}
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	format, err := fs.ParseFormat(c.Format, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	db, err := openDB(c.DB)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer db.Close()

	dataset, err := sqlite.NewStore(db).LoadDataset(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	if err := fs.NewWriter(c.Output, format).WriteDataset(deps.Ctx, dataset); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leaders.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d leaders to %s\n", dataset.Len(), c.Output)
	return nil
}

func openDB(path string) (*sqlite.DB, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return db, nil
}
