package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the lost/found listing endpoint of the Mumbai
	// Police portal.
	DefaultBaseURL = "https://mumbaipolice.gov.in/Lostfoundarticle"

	// DefaultTimeout is the per-request timeout. The portal responds
	// slowly under load; a shorter timeout drops too many pages.
	DefaultTimeout = 30 * time.Second

	// DefaultWorkers is the number of pages fetched concurrently.
	DefaultWorkers = 10

	// DefaultUserAgent identifies lostfoundscan in HTTP requests so
	// portal operators can recognize the traffic in their logs.
	DefaultUserAgent = "lostfoundscan/1.0 (+https://github.com/khoj-tools/lostfoundscan)"

	// DefaultMaxBodySize limits the response body size read per page.
	// Listing pages are small; 5MB leaves ample headroom.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "lostfoundscan"
)

// Scheduler strategy names accepted by the --scheduler flag.
const (
	// SchedulerOrdered fans pages out via errgroup and aggregates
	// results in page order.
	SchedulerOrdered = "ordered"

	// SchedulerPool drains a page queue with a fixed worker pool and
	// aggregates results in completion order.
	SchedulerPool = "pool"
)

// Config holds all runtime options for lostfoundscan. It is populated
// from CLI flags and the optional config file, then passed through the
// application via dependency injection rather than global state.
//
// A single flat struct keeps things simple; the option count is small
// enough that nested sub-structs would add noise without benefit.
type Config struct {
	// BaseURL is the listing endpoint to scrape.
	BaseURL string

	// Timeout is the per-request timeout for page fetches.
	Timeout time.Duration

	// Workers is the maximum number of pages fetched concurrently.
	Workers int

	// Scheduler selects the concurrency strategy: SchedulerOrdered or
	// SchedulerPool.
	Scheduler string

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero means use DefaultMaxBodySize.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// JSONOutput writes records as JSON instead of the default CSV.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput writes records as a Markdown report instead of
	// the default CSV. Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile is the destination path for the record output.
	// When empty, output goes to stdout.
	OutputFile string

	// DBDir is the directory holding the SQLite database. Scrape runs
	// are persisted there for later offline analysis. When empty, the
	// XDG data directory is used.
	DBDir string

	// NoSave disables persisting the scrape run to the database.
	NoSave bool

	// ConfigFilePath is an explicit path to the configuration file.
	// When empty, the tool searches for .lostfoundscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds settings loaded from the config file, when one
	// was found.
	FileConfig *File
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values is not an option; this also
// documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		Workers:     DefaultWorkers,
		Scheduler:   SchedulerOrdered,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// ApplyFile overlays file-level settings onto the config. Only fields
// the file actually sets are applied; CLI-populated values for other
// fields survive.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.FileConfig = f
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
}

// Validate checks that the configuration is usable. It returns the
// first problem found; fixing one error often makes others irrelevant.
// Called once after CLI parsing, before any scraping begins.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Scheduler != SchedulerOrdered && c.Scheduler != SchedulerPool {
		return ErrUnknownScheduler
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}

// XDGDataDir returns the XDG data directory for lostfoundscan.
// On Linux: ~/.local/share/lostfoundscan
// On macOS: ~/Library/Application Support/lostfoundscan
// On Windows: %LOCALAPPDATA%\lostfoundscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for lostfoundscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for lostfoundscan.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
