package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/helmcraft/storefront/core/kvstore"
)

// persistedCredentials is the exact subset of session state written to
// storage. The user profile is deliberately absent: it is refetched from
// the backend on rehydration to avoid serving stale profile data.
type persistedCredentials struct {
	AccessToken     string `json:"accessToken"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Credentials holds the access token shared between the API client and the
// session store, backed by a kvstore record. Safe for concurrent use.
type Credentials struct {
	mu      sync.RWMutex
	current persistedCredentials

	storage kvstore.Store
	key     string
}

// NewCredentials creates a credential holder persisting under key.
func NewCredentials(storage kvstore.Store, key string) *Credentials {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Credentials{storage: storage, key: key}
}

// Load reads the persisted credential record into memory. A missing record
// leaves the holder empty and is not an error.
func (c *Credentials) Load(ctx context.Context) error {
	raw, err := c.storage.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil
		}
		return errors.Join(ErrStorage, err)
	}

	var stored persistedCredentials
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// A corrupt record is treated as absent; the next CheckAuth settles
		// the session state against the backend.
		return nil
	}

	c.mu.Lock()
	c.current = stored
	c.mu.Unlock()
	return nil
}

// Token returns the held access token, empty when signed out.
func (c *Credentials) Token(context.Context) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.AccessToken
}

// IsAuthenticated reports the persisted authenticated flag.
func (c *Credentials) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.IsAuthenticated
}

// SetToken stores a new access token and persists the record.
func (c *Credentials) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.current = persistedCredentials{AccessToken: token, IsAuthenticated: token != ""}
	record := c.current
	c.mu.Unlock()

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if err := c.storage.Set(ctx, c.key, string(raw)); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Clear wipes the in-memory and persisted credential state.
func (c *Credentials) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.current = persistedCredentials{}
	c.mu.Unlock()

	if err := c.storage.Delete(ctx, c.key); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}
