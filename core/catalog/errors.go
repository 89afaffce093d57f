package catalog

import "errors"

// ErrMissingClient is returned by NewClient when no API client is provided.
var ErrMissingClient = errors.New("catalog: api client is required")
