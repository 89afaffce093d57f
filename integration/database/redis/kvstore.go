package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/helmcraft/storefront/core/kvstore"
)

// Store adapts a Redis client to the kvstore.Store interface, giving the
// storefront's persisted state survival across restarts.
type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore creates a Redis-backed kvstore with an optional key prefix.
func NewStore(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", kvstore.ErrEmptyKey
	}

	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", kvstore.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	return s.client.Del(ctx, s.key(key)).Err()
}
