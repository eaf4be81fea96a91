package scraper

import "errors"

var (
	// ErrUnexpectedStatus is returned when the portal responds with a
	// non-200 status code.
	ErrUnexpectedStatus = errors.New("scraper: unexpected HTTP status")

	// ErrEmptyBaseURL is returned when a fetcher is constructed without
	// a base URL.
	ErrEmptyBaseURL = errors.New("scraper: base URL must not be empty")
)
