package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint on external_id or
	// email is violated
	ErrDuplicate = errors.New("user record already exists")
)
