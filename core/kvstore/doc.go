// Package kvstore defines the persistence interface for the storefront's
// minimal local state: the auth credential snapshot and the cart snapshot,
// each serialized as text under a distinct namespaced key.
//
// The package ships an in-memory implementation; a Redis-backed one lives in
// integration/database/redis for deployments that need state to survive
// restarts.
package kvstore
