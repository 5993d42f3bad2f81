package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a user or post does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique constraint is violated,
	// most notably a duplicate email at registration.
	ErrConflict = errors.New("record already exists")
)
