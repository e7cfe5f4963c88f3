package openlibrary

import (
	"errors"
	"fmt"
)

var (
	// ErrOffline is returned when no network path is available. It is
	// checked proactively before any call is attempted.
	ErrOffline = errors.New("internet connection required")

	// ErrTimeout is returned when a remote call exceeded its time bound.
	ErrTimeout = errors.New("OpenLibrary request timed out")

	// ErrNotFound is returned when the remote service has no record (404).
	ErrNotFound = errors.New("resource not found on OpenLibrary")

	// ErrRateLimited is returned when the remote service throttles us (429).
	ErrRateLimited = errors.New("too many requests to OpenLibrary")
)

// RemoteError covers any other non-2xx response or transport failure,
// carrying the numeric HTTP status when one was received (0 otherwise).
type RemoteError struct {
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("OpenLibrary request failed with status %d", e.Status)
	}
	return fmt.Sprintf("OpenLibrary request failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// UserMessage maps a classified error to the human-readable status message
// shown to the user. Connectivity and rate-limit conditions get distinct
// messages; everything else collapses to a generic connection error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrOffline):
		return "Internet connection required"
	case errors.Is(err, ErrTimeout):
		return "Connection to OpenLibrary timed out"
	case errors.Is(err, ErrNotFound):
		return "Resource not found"
	case errors.Is(err, ErrRateLimited):
		return "Too many requests, please wait"
	default:
		return "Error connecting to OpenLibrary"
	}
}
