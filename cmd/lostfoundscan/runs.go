package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khoj-tools/lostfoundscan/internal/config"
	"github.com/khoj-tools/lostfoundscan/internal/database"
)

// NewRunsCmd creates the runs command.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored scrape runs",
		Long: `Runs lists every scrape run stored in the database, most recent
first, with the search parameters and record count of each. Use the
run IDs with "lostfoundscan analyze --run".`,
		RunE: runRunsCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runRunsCmd executes the runs command.
func runRunsCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no scrape data found (run \"lostfoundscan scrape\" first): %w", err)
	}
	defer db.Close() //nolint:errcheck // Close error is not actionable

	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scrape runs stored yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRAPED AT\tTYPE\tARTICLE\tSCHEDULER\tRECORDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ComplaintType.String(),
			string(run.ArticleType),
			run.Scheduler,
			run.TotalRecords,
		)
	}
	return w.Flush()
}
