package checkout

import "errors"

// ErrMissingClient is returned by NewService when no API client is provided.
var ErrMissingClient = errors.New("checkout: api client is required")
