package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when the connection URL is missing.
	ErrEmptyConnectionURL = errors.New("redis: connection URL is required")
	// ErrConnectionFailed is returned when the server cannot be reached after all retries.
	ErrConnectionFailed = errors.New("redis: connection failed")
)
