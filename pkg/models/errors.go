package models

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned when no usable credential is available:
	// the stored token is missing or the backend rejected it.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
)

// APIError is a non-success response from the backend, carrying the message
// of its error envelope when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}
