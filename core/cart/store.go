package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/helmcraft/storefront/core/api"
	"github.com/helmcraft/storefront/core/kvstore"
	"github.com/helmcraft/storefront/core/logger"
	"github.com/helmcraft/storefront/core/notify"
)

// API is the slice of the backend client the cart store depends on.
type API interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Put(ctx context.Context, path string, body, result any) error
	Delete(ctx context.Context, path string, result any) error
}

// Store caches the server-synchronized cart. Every mutation round-trips to
// the backend and replaces the whole cart with the server's response; on
// failure the previous state is left untouched.
type Store struct {
	mu         sync.RWMutex
	cart       *Cart
	isUpdating bool
	isLoading  bool
	// fetched guards the once-per-authenticated-session background fetch;
	// reset on sign-out.
	fetched bool

	client   API
	storage  kvstore.Store
	notifier notify.Notifier
	log      *slog.Logger
	cfg      Config
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithNotifier sets the destination for mutation outcome notifications.
func WithNotifier(n notify.Notifier) StoreOption {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the structured logger. Logging is off by default.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates a cart store with no cart loaded.
func NewStore(client API, storage kvstore.Store, cfg Config, opts ...StoreOption) (*Store, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	if storage == nil {
		return nil, ErrMissingStorage
	}

	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.AdminPathPrefix == "" {
		cfg.AdminPathPrefix = "/admin"
	}

	s := &Store{
		client:   client,
		storage:  storage,
		notifier: notify.Nop{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Cart returns a copy of the last known server cart, or false when none is loaded.
func (s *Store) Cart() (Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return Cart{}, false
	}
	c := *s.cart
	c.Items = append([]Item(nil), s.cart.Items...)
	return c, true
}

// TotalItems recomputes the item count from current state on every call.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

// TotalPrice recomputes the price total from current state on every call.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}

// IsUpdating reports whether a mutation is in flight. The UI disables
// duplicate submissions while set; the store itself does not queue calls.
func (s *Store) IsUpdating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isUpdating
}

// IsLoading reports whether a background fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Rehydrate restores the persisted cart snapshot for immediate display.
// The next Fetch replaces it with the authoritative server state.
func (s *Store) Rehydrate(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, s.cfg.StorageKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil
		}
		return err
	}

	var snapshot Cart
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// Corrupt snapshot: drop it, the server copy wins anyway.
		return nil
	}

	s.mu.Lock()
	if s.cart == nil {
		s.cart = &snapshot
	}
	s.mu.Unlock()
	return nil
}

// Fetch loads the cart from the backend. Failures keep the prior state and
// are not surfaced as notifications: a failed background fetch should not
// interrupt browsing.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	var fetched Cart
	if err := s.client.Get(ctx, "/cart", &fetched); err != nil {
		s.log.Debug("cart fetch failed, keeping previous state",
			logger.Component("cart"), logger.Error(err))
		return err
	}

	s.replace(ctx, &fetched)
	return nil
}

// EnsureFetched triggers the background fetch at most once per
// authenticated session and skips administrative routes entirely.
func (s *Store) EnsureFetched(ctx context.Context, route string) {
	if strings.HasPrefix(route, s.cfg.AdminPathPrefix) {
		return
	}

	s.mu.Lock()
	if s.fetched {
		s.mu.Unlock()
		return
	}
	s.fetched = true
	s.mu.Unlock()

	// Errors are swallowed here by design of the background fetch.
	_ = s.Fetch(ctx)
}

// AddToCart adds a product (optionally a specific variant) to the cart.
func (s *Store) AddToCart(ctx context.Context, productID, variantID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	body := map[string]any{"productId": productID, "quantity": quantity}
	if variantID != "" {
		body["variantId"] = variantID
	}

	return s.mutate(ctx, "Added to cart", "Could not add item to cart", func() (*Cart, error) {
		var updated Cart
		if err := s.client.Post(ctx, "/cart/items", body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// UpdateQuantity sets the quantity of an existing item. Quantities below
// one are rejected before any request: removal goes through RemoveItem.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	return s.mutate(ctx, "Cart updated", "Could not update cart", func() (*Cart, error) {
		var updated Cart
		body := map[string]int{"quantity": quantity}
		if err := s.client.Put(ctx, "/cart/items/"+url.PathEscape(itemID), body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// RemoveItem deletes an item from the cart.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	return s.mutate(ctx, "Removed from cart", "Could not remove item", func() (*Cart, error) {
		var updated Cart
		if err := s.client.Delete(ctx, "/cart/items/"+url.PathEscape(itemID), &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// ClearCart empties the cart server-side and locally.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "Cart cleared", "Could not clear cart", func() (*Cart, error) {
		var updated Cart
		if err := s.client.Delete(ctx, "/cart", &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// ResetOnSignOut resets the fetch guard and, when configured, wipes the
// persisted snapshot. Wire it to the session store's sign-out event.
func (s *Store) ResetOnSignOut(ctx context.Context) {
	s.mu.Lock()
	s.fetched = false
	if s.cfg.ClearOnLogout {
		s.cart = nil
	}
	s.mu.Unlock()

	if s.cfg.ClearOnLogout {
		if err := s.storage.Delete(ctx, s.cfg.StorageKey); err != nil {
			s.log.Warn("failed to clear cart snapshot",
				logger.Component("cart"), logger.Error(err))
		}
	}
}

// mutate is the shared mutation protocol: flag, one request, replace on
// success with a success notification, keep prior state on failure with an
// error notification carrying the backend's message.
func (s *Store) mutate(ctx context.Context, successMsg, fallbackMsg string, op func() (*Cart, error)) error {
	s.mu.Lock()
	s.isUpdating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isUpdating = false
		s.mu.Unlock()
	}()

	updated, err := op()
	if err != nil {
		notify.Error(ctx, s.notifier, api.Message(err, fallbackMsg))
		return err
	}

	s.replace(ctx, updated)
	notify.Success(ctx, s.notifier, successMsg)
	return nil
}

// replace swaps the cached cart for the server's response and persists the snapshot.
func (s *Store) replace(ctx context.Context, c *Cart) {
	s.mu.Lock()
	s.cart = c
	s.mu.Unlock()

	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.storage.Set(ctx, s.cfg.StorageKey, string(raw)); err != nil {
		s.log.Warn("failed to persist cart snapshot",
			logger.Component("cart"), logger.Error(err))
	}
}
