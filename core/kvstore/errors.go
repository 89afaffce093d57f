package kvstore

import "errors"

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrEmptyKey is returned when an operation receives an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")
)
