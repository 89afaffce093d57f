// Package redis provides Redis client initialization with connection
// verification and retry, a readiness probe, and a Redis-backed
// implementation of the storefront's kvstore.Store interface.
//
// Connect validates the URL, establishes the connection, and confirms it
// with a ping before returning the client. Store maps redis.Nil onto
// kvstore.ErrNotFound so callers only ever deal with the kvstore error
// vocabulary.
package redis
