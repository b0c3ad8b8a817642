package fetch

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing input document.
type NotFoundError struct {
	Location string // file path or URL
	Err      error  // underlying error, if any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Location)
}

// Unwrap exposes both ErrNotFound and the underlying error.
func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNotFound, e.Err}
	}
	return []error{ErrNotFound}
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	Location   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.Location)
}
