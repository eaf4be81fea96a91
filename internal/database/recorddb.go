package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// RecordDB provides SQLite-based storage for scrape runs and their
// records. It manages the connection and provides CRUD operations.
//
// One database file holds every run, so cross-run queries (history,
// trend analysis) stay simple and backup is a single-file copy.
type RecordDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RecordDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RecordDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an
// error is returned instead of creating a new empty file.
func Open(dbDir string, opts Options) (*RecordDB, error) {
	dbPath := filepath.Join(dbDir, "lostfoundscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rw prevents creating new files,
	// mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RecordDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RecordDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RecordDB) createTables() error {
	schema := `
	-- Runs store one scrape invocation with its search parameters
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		complaint_type TEXT NOT NULL,
		article_type TEXT NOT NULL,
		article_desc TEXT NOT NULL DEFAULT '',
		scheduler TEXT NOT NULL DEFAULT '',
		total_records INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_search ON runs(complaint_type, article_type);

	-- Records store the extracted reports of a run, one column per
	-- allow-listed field. NULL means the field was absent from the
	-- page markup; empty string means it was present but blank.
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		police_station TEXT,
		full_name TEXT,
		contact_number TEXT,
		address TEXT,
		pin_code TEXT,
		email_id TEXT,
		date_time TEXT,
		place_details TEXT,
		article_description TEXT,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// fieldColumns maps the allow-listed field names to record columns,
// in model.FieldNames order.
var fieldColumns = []string{
	"police_station",
	"full_name",
	"contact_number",
	"address",
	"pin_code",
	"email_id",
	"date_time",
	"place_details",
	"article_description",
}

// Run is the stored metadata of one scrape invocation.
type Run struct {
	// ID is the run's unique identifier in the database.
	ID int64

	// Timestamp is when the scrape was performed.
	Timestamp time.Time

	// ComplaintType is the searched complaint type.
	ComplaintType model.ComplaintType

	// ArticleType is the searched article category.
	ArticleType model.ArticleType

	// ArticleDesc is the free-text description filter, if any.
	ArticleDesc string

	// Scheduler names the concurrency strategy used for the run.
	Scheduler string

	// TotalRecords is the number of records the run extracted.
	TotalRecords int
}

// SaveRun persists a scrape run and its records in one transaction
// and returns the new run's ID. Record positions preserve the scrape
// aggregation order.
func (rdb *RecordDB) SaveRun(ctx context.Context, params model.SearchParams, scheduler string, records []model.Record) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (complaint_type, article_type, article_desc, scheduler, total_records) VALUES (?, ?, ?, ?, ?)`,
		string(params.ComplaintType),
		string(params.ArticleType),
		params.ArticleDesc,
		scheduler,
		len(records),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO records (run_id, position,
		police_station, full_name, contact_number, address, pin_code,
		email_id, date_time, place_details, article_description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // Close error is not actionable

	for pos, rec := range records {
		args := make([]any, 0, len(model.FieldNames)+2)
		args = append(args, runID, pos)
		for _, name := range model.FieldNames {
			if v, ok := rec[name]; ok {
				args = append(args, v)
			} else {
				// NULL preserves "field absent from markup".
				args = append(args, nil)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun retrieves run metadata by ID. Returns nil when no such run
// exists.
func (rdb *RecordDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := rdb.db.QueryRowContext(ctx, `
	SELECT id, timestamp, complaint_type, article_type, article_desc, scheduler, total_records
	FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun retrieves the most recent run. Returns nil when the
// database holds no runs yet.
func (rdb *RecordDB) LatestRun(ctx context.Context) (*Run, error) {
	row := rdb.db.QueryRowContext(ctx, `
	SELECT id, timestamp, complaint_type, article_type, article_desc, scheduler, total_records
	FROM runs ORDER BY id DESC LIMIT 1`)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*Run, error) {
	var (
		run           Run
		timestamp     string
		complaintType string
		articleType   string
	)
	err := row.Scan(&run.ID, &timestamp, &complaintType, &articleType, &run.ArticleDesc, &run.Scheduler, &run.TotalRecords)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.Timestamp = parseTimestamp(timestamp)
	run.ComplaintType = model.ComplaintType(complaintType)
	run.ArticleType = model.ArticleType(articleType)
	return &run, nil
}

// ListRuns returns every stored run, most recent first.
func (rdb *RecordDB) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT id, timestamp, complaint_type, article_type, article_desc, scheduler, total_records
	FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run           Run
			timestamp     string
			complaintType string
			articleType   string
		)
		if err := rows.Scan(&run.ID, &timestamp, &complaintType, &articleType, &run.ArticleDesc, &run.Scheduler, &run.TotalRecords); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Timestamp = parseTimestamp(timestamp)
		run.ComplaintType = model.ComplaintType(complaintType)
		run.ArticleType = model.ArticleType(articleType)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Records retrieves the records of a run in their stored scrape order.
// NULL columns stay absent from the returned record maps.
func (rdb *RecordDB) Records(ctx context.Context, runID int64) ([]model.Record, error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT police_station, full_name, contact_number, address, pin_code,
	       email_id, date_time, place_details, article_description
	FROM records WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		cols := make([]sql.NullString, len(fieldColumns))
		dest := make([]any, len(cols))
		for i := range cols {
			dest[i] = &cols[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec := model.Record{}
		for i, name := range model.FieldNames {
			if cols[i].Valid {
				rec[name] = cols[i].String
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteRun removes a run and, via the cascade, its records.
func (rdb *RecordDB) DeleteRun(ctx context.Context, id int64) error {
	if _, err := rdb.db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := rdb.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// timestampFormats contains the timestamp formats that SQLite may
// return. More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string using the formats SQLite is
// known to emit. Returns zero time if no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
