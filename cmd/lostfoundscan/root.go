package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for lostfoundscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lostfoundscan",
		Short: "Scraper for the Mumbai Police lost/found article listing",
		Long: `lostfoundscan scrapes the Mumbai Police lost/found article listing,
stores every scrape run in a local SQLite database, and analyzes the
collected records offline: station activity, time-of-day patterns,
locality grouping, and more.

Scraped records contain personal data. Log output masks it
automatically, but database and report files are your responsibility.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
