package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khoj-tools/lostfoundscan/internal/config"
	"github.com/khoj-tools/lostfoundscan/internal/database"
	"github.com/khoj-tools/lostfoundscan/internal/log"
	"github.com/khoj-tools/lostfoundscan/internal/model"
	"github.com/khoj-tools/lostfoundscan/internal/scraper"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the lost/found listing and store the records",
		Long: `Scrape fetches every page of the lost/found article listing for one
search, extracts the records, writes them in the requested format, and
saves the run to the local database for later analysis.

The first page is fetched to discover the page count; the remaining
pages are fetched concurrently. A page that fails is logged and
skipped without aborting the rest of the scrape.

Examples:
  # Scrape lost "Other Documents" reports (the defaults)
  lostfoundscan scrape

  # Scrape found PAN cards as pretty JSON
  lostfoundscan scrape --type found --article "PAN Card" --json

  # Use the worker-pool scheduler with 4 workers, write CSV to a file
  lostfoundscan scrape --scheduler pool --workers 4 -o records.csv

  # Scrape without saving to the database
  lostfoundscan scrape --no-save`,
		RunE: runScrapeCmd,
	}

	// Search flags
	cmd.Flags().StringP("type", "t", "lost",
		"Complaint type: lost or found")
	cmd.Flags().StringP("article", "a", string(model.ArticleOtherDocuments),
		"Article category to search")
	cmd.Flags().StringP("desc", "d", "",
		"Free-text article description filter")

	// Fetch behavior flags
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Maximum number of pages fetched concurrently")
	cmd.Flags().StringP("scheduler", "s", config.SchedulerOrdered,
		"Concurrency strategy: ordered (stable output order) or pool (completion order)")
	cmd.Flags().String("base-url", "",
		"Listing URL to scrape (default: the Mumbai Police portal)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .lostfoundscan in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Output records as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output records as Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the run to the database")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	params, err := buildSearchParams(cmd)
	if err != nil {
		return err
	}

	// Set up structured logging with personal-data masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	if params.ArticleType.IsDeprecated() {
		logger.Warn("article category is deprecated on the portal and may return no results",
			"article_type", string(params.ArticleType))
		fmt.Fprintf(os.Stderr, "Warning: article category %q is deprecated on the portal.\n", params.ArticleType)
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, params, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildScrapeConfig creates a Config from cobra command flags and the
// optional configuration file.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Scheduler, err = cmd.Flags().GetString("scheduler")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the optional config file. An explicitly specified file must
	// exist; an implicit lookup may come up empty.
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

	// The --base-url flag wins over the config file.
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
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

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
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

// buildSearchParams creates SearchParams from the search flags.
func buildSearchParams(cmd *cobra.Command) (model.SearchParams, error) {
	params := model.NewSearchParams()

	typeFlag, err := cmd.Flags().GetString("type")
	if err != nil {
		return params, err
	}
	params.ComplaintType, err = model.ParseComplaintType(typeFlag)
	if err != nil {
		return params, err
	}

	articleFlag, err := cmd.Flags().GetString("article")
	if err != nil {
		return params, err
	}
	params.ArticleType, err = model.ParseArticleType(articleFlag)
	if err != nil {
		return params, err
	}

	params.ArticleDesc, err = cmd.Flags().GetString("desc")
	if err != nil {
		return params, err
	}

	return params, nil
}

// newScraper assembles the fetcher and scheduler pair for the
// configured strategy. The ordered scheduler keeps many requests in
// flight against one host, so it gets the connection-pooling fetcher;
// the worker pool holds one request per worker and gets the simple
// fetcher.
func newScraper(cfg *config.Config, logger *slog.Logger) (*scraper.Scraper, error) {
	fetchOpts := []scraper.FetcherOption{
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithMaxBodySize(cfg.MaxBodySize),
	}

	var (
		fetcher scraper.Fetcher
		sched   scraper.Scheduler
		err     error
	)
	switch cfg.Scheduler {
	case config.SchedulerPool:
		fetcher, err = scraper.NewSimpleFetcher(cfg.BaseURL, fetchOpts...)
		if err != nil {
			return nil, err
		}
		sched = scraper.NewPoolScheduler(cfg.Workers, scraper.WithSchedulerLogger(logger))
	default:
		fetcher, err = scraper.NewPooledFetcher(cfg.BaseURL, cfg.Workers, fetchOpts...)
		if err != nil {
			return nil, err
		}
		sched = scraper.NewOrderedScheduler(
			scraper.WithSchedulerConcurrency(cfg.Workers),
			scraper.WithSchedulerLogger(logger),
		)
	}

	return scraper.New(fetcher, sched, scraper.WithLogger(logger)), nil
}

// runScrape executes the scrape and handles output and persistence.
func runScrape(ctx context.Context, cfg *config.Config, params model.SearchParams, logger *slog.Logger) error {
	logger.Info("starting scrape",
		"base_url", cfg.BaseURL,
		"complaint_type", params.ComplaintType.String(),
		"article_type", string(params.ArticleType),
		"scheduler", cfg.Scheduler,
		"workers", cfg.Workers,
	)

	s, err := newScraper(cfg, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	records := s.Run(ctx, params)
	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "Scraped %d record(s) in %s\n", len(records), elapsed.Round(time.Millisecond))

	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if _, err := newWriter(cfg, out).Write(records); err != nil {
		_ = closeOut() //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	if cfg.NoSave {
		return nil
	}
	return saveRun(ctx, cfg, params, records, logger)
}

// saveRun persists the scrape run to the database.
func saveRun(ctx context.Context, cfg *config.Config, params model.SearchParams, records []model.Record, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Close error is not actionable

	runID, err := db.SaveRun(ctx, params, cfg.Scheduler, records)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to database", "run_id", runID, "dir", cfg.DBDir)
	fmt.Fprintf(os.Stderr, "Saved run %d to %s\n", runID, cfg.DBDir)
	return nil
}
