package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
// Package-level sentinels let callers use errors.Is while keeping
// human-readable messages.
var (
	// ErrNoBaseURL is returned when the listing URL is empty.
	ErrNoBaseURL = errors.New("no base URL: provide a listing URL or remove the empty --base-url flag")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrUnknownScheduler is returned when the scheduler name is
	// neither "ordered" nor "pool".
	ErrUnknownScheduler = errors.New("unknown scheduler: use \"ordered\" or \"pool\"")

	// ErrConflictingOutputFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
