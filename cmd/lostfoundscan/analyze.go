package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoj-tools/lostfoundscan/internal/analyze"
	"github.com/khoj-tools/lostfoundscan/internal/config"
	"github.com/khoj-tools/lostfoundscan/internal/database"
	"github.com/khoj-tools/lostfoundscan/internal/log"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the records of a stored scrape run",
		Long: `Analyze computes statistics over a stored scrape run: records per
police station, hour-of-day and seasonal distributions, locality
keywords mentioned in the place and article description fields, Mumbai
versus non-Mumbai pin codes, and e-mail provider counts.

By default the most recent run is analyzed; use --run to pick another.

Examples:
  # Analyze the latest run as CSV rows
  lostfoundscan analyze

  # Analyze run 3 as a Markdown report written to a file
  lostfoundscan analyze --run 3 --markdown -o analysis.md

  # Analyze with a custom area keyword list from the config file
  lostfoundscan analyze -c .lostfoundscan`,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().Int64P("run", "r", 0,
		"Run ID to analyze (default: the most recent run)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .lostfoundscan in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write summary to specified file path")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.JSONOutput && cfg.MarkdownOutput {
		return config.ErrConflictingOutputFormats
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	return runAnalyze(cfg, runID, logger)
}

// buildAnalyzeConfig creates a Config from the analyze command flags.
func buildAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runAnalyze loads the requested run and writes its summary.
func runAnalyze(cfg *config.Config, runID int64, logger *slog.Logger) error {
	// Analysis never creates a database; a missing one means there is
	// nothing to analyze.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return fmt.Errorf("no scrape data found (run \"lostfoundscan scrape\" first): %w", err)
	}
	defer db.Close() //nolint:errcheck // Close error is not actionable

	ctx := context.Background()

	var run *database.Run
	if runID > 0 {
		run, err = db.GetRun(ctx, runID)
	} else {
		run, err = db.LatestRun(ctx)
	}
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no matching scrape run found")
	}

	records, err := db.Records(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	logger.Info("analyzing run",
		"run_id", run.ID,
		"scraped_at", run.Timestamp,
		"records", len(records),
	)

	analyzerOpts := []analyze.Option{analyze.WithLogger(logger)}
	if cfg.FileConfig != nil && len(cfg.FileConfig.Areas) > 0 {
		analyzerOpts = append(analyzerOpts, analyze.WithAreas(cfg.FileConfig.Areas))
	}
	summary := analyze.New(analyzerOpts...).Analyze(records)

	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if _, err := newWriter(cfg, out).WriteSummary(&summary); err != nil {
		_ = closeOut() //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return closeOut()
}
