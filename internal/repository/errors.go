package repository

import "errors"

// Store-level sentinel errors. Implementations map their backend's
// failure modes onto these so services never see driver errors directly.
var (
	// ErrNotFound means the requested record or key is absent.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means a write violated a uniqueness expectation.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)
