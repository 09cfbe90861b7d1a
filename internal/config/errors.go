package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Sentinel values let callers branch with errors.Is while keeping a
// readable message for the CLI.
var (
	// ErrNoDataDir is returned when the data directory is empty.
	ErrNoDataDir = errors.New("no data directory configured")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	ErrInvalidDepth = errors.New("invalid crawl depth: must be non-negative")

	// ErrInvalidWait is returned when the request wait is negative.
	ErrInvalidWait = errors.New("invalid wait: must be non-negative")

	// ErrInvalidJitter is returned when the jitter fraction is outside
	// the range 0 to 1.
	ErrInvalidJitter = errors.New("invalid jitter: must be between 0 and 1")

	// ErrInvalidAutoSave is returned when the auto-save interval is
	// negative. Zero disables mid-round saves.
	ErrInvalidAutoSave = errors.New("invalid auto-save interval: must be non-negative")

	// ErrInvalidTimeout is returned when the HTTP timeout is not
	// positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
)
