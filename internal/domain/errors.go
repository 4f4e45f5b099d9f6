package domain

import "errors"

var (
	// ErrMissingInput is returned when a required collection file is absent
	// or unparseable. Callers degrade to an empty collection.
	ErrMissingInput = errors.New("input collection missing or unreadable")

	// ErrPersistenceFailure is returned when an output file cannot be
	// written. Logged at the pipeline boundary, never raised past it.
	ErrPersistenceFailure = errors.New("failed to persist output")

	// ErrNoBarcode is returned when an extraction response lacks the
	// barcode field and therefore cannot join anything.
	ErrNoBarcode = errors.New("response missing barcode")

	// ErrEmptyResponse is returned when the model answers with no usable
	// candidates.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrScrapeBlocked is returned when a page yields none of the expected
	// markup, usually a bot wall.
	ErrScrapeBlocked = errors.New("page contains no product markup")
)
