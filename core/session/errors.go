package session

import "errors"

var (
	// ErrNotAuthenticated is returned by actions that require a signed-in user.
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrStorage is returned when reading or writing the persisted credential record fails.
	ErrStorage = errors.New("session: storage failure")
	// ErrMissingClient is returned by NewStore when no API client is provided.
	ErrMissingClient = errors.New("session: api client is required")
	// ErrMissingCredentials is returned by NewStore when no credential holder is provided.
	ErrMissingCredentials = errors.New("session: credentials are required")
)
