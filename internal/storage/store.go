// Package storage persists the Book and Author collections as JSON blobs
// under fixed keys in a local key-value store.
package storage

import "fmt"

// Store defines the interface for the local key-value store.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// Get returns the value stored under key. The second return value
	// reports whether the key was present.
	Get(key string) (string, bool, error)

	// Put writes the value under key in a single atomic statement.
	// A failed write leaves any previously stored value in place.
	Put(key, value string) error

	// Delete removes the key if present.
	Delete(key string) error

	// Close closes the connection to the data store
	Close() error
}

// SerializationError indicates local data could not be encoded for storage.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("data for %s is not serializable: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
