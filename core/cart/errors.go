package cart

import "errors"

var (
	// ErrInvalidQuantity is returned when a quantity below one reaches
	// UpdateQuantity; zero and negative quantities must go through RemoveItem.
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
	// ErrMissingClient is returned by NewStore when no API client is provided.
	ErrMissingClient = errors.New("cart: api client is required")
	// ErrMissingStorage is returned by NewStore when no storage is provided.
	ErrMissingStorage = errors.New("cart: storage is required")
)
