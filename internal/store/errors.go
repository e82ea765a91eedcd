package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced album or photo no longer exists,
	// e.g. it was deleted by another session.
	ErrNotFound = errors.New("not found")

	// ErrCapReached means the album's selection limit is already met.
	ErrCapReached = errors.New("selection limit reached")

	// ErrEmptySelection means a submit was attempted with nothing selected.
	ErrEmptySelection = errors.New("no photos selected")

	// ErrAlbumSubmitted means the client already finalized their selection;
	// the album is read-only until an admin reopens it.
	ErrAlbumSubmitted = errors.New("album selection already submitted")
)

// ValidationError reports malformed input rejected at the store boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
