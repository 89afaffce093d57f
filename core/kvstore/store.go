package kvstore

import "context"

// Store persists small text records under namespaced keys.
// The storefront uses it for the auth credential snapshot and the cart
// snapshot; implementations must handle concurrent access safely.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
