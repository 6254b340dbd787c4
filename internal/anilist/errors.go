package anilist

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the catalog reports no matching media.
// It is an expected outcome, not a transport failure.
var ErrNotFound = errors.New("media not found")

// FetchError classifies a failed catalog fetch: transport breakage,
// a non-2xx response, or a non-empty GraphQL errors array.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("anilist %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("anilist %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
