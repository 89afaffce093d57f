package api

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned after a terminal authentication failure:
	// the request received 401 and the one permitted refresh attempt did not help.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrForbidden is returned for 403 responses.
	ErrForbidden = errors.New("api: forbidden")
	// ErrNotFound is returned for 404 responses. Many call sites treat it as benign.
	ErrNotFound = errors.New("api: not found")
	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("api: rate limited")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("api: server error")
	// ErrBadRequest is returned for 4xx responses not covered by a more specific sentinel.
	ErrBadRequest = errors.New("api: bad request")
	// ErrTransport is returned when the request never produced an HTTP response.
	ErrTransport = errors.New("api: transport failure")
	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("api: failed to decode response")
	// ErrMissingBaseURL is returned by New when the base URL is empty.
	ErrMissingBaseURL = errors.New("api: base URL is required")
	// ErrMissingCredentialStore is returned by New when no credential store is provided.
	ErrMissingCredentialStore = errors.New("api: credential store is required")
)

// Error is a structured backend failure carrying the HTTP status and the
// message extracted from the response envelope.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Unwrap maps the status onto the package sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}

// Message extracts a human-readable message from err, falling back to
// fallback when err carries none. Backend messages arrive via Error;
// anything else is considered internal detail not fit for display.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
