// Package scraper fetches the lost/found listing pages and turns them
// into records. It covers the full pipeline: fetching a page over HTTP,
// discovering how many pages the listing spans, extracting records from
// the markup, and scheduling the per-page work across goroutines.
package scraper
