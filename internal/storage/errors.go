package storage

import "errors"

// Storage errors shared by all run registry implementations.
var (
	// ErrNotFound is returned when a requested run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a run whose ID already
	// exists. Runs are immutable once registered; there are no updates.
	ErrDuplicateKey = errors.New("duplicate key: runs are immutable once registered")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
