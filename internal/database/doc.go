// Package database provides SQLite-based storage for lostfoundscan.
//
// This package implements the RecordDB, which stores:
//   - Scrape runs with their search parameters
//   - The records each run extracted, in scrape order
//
// SQLite (via modernc.org/sqlite) keeps the database a single file
// with no CGO requirement, which is enough for a local analysis store.
// WAL mode gives good concurrent read performance.
package database
