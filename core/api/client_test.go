package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcraft/storefront/core/api"
	"github.com/helmcraft/storefront/core/notify"
)

// memCreds is an in-memory CredentialStore for tests.
type memCreds struct {
	mu    sync.Mutex
	token string
}

func (m *memCreds) Token(context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memCreds) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memCreds) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// captureNotifier records notifications emitted by the client.
type captureNotifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (c *captureNotifier) Notify(_ context.Context, n notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *captureNotifier) all() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Notification(nil), c.notifications...)
}

func newClient(t *testing.T, baseURL string, creds api.CredentialStore, opts ...api.Option) *api.Client {
	t.Helper()
	client, err := api.New(api.Config{BaseURL: baseURL, Timeout: 5 * time.Second}, creds, opts...)
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := api.New(api.Config{}, &memCreds{})
		assert.ErrorIs(t, err, api.ErrMissingBaseURL)
	})

	t.Run("requires credential store", func(t *testing.T) {
		t.Parallel()

		_, err := api.New(api.Config{BaseURL: "http://localhost"}, nil)
		assert.ErrorIs(t, err, api.ErrMissingCredentialStore)
	})
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("attaches bearer token and decodes envelope data", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"name":"MT Thunder 4"}}`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL, &memCreds{token: "tok-1"})

		var result struct {
			Name string `json:"name"`
		}
		require.NoError(t, client.Get(context.Background(), "/products/1", &result))
		assert.Equal(t, "Bearer tok-1", gotAuth)
		assert.Equal(t, "MT Thunder 4", result.Name)
	})

	t.Run("omits authorization header without a token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL, &memCreds{})
		require.NoError(t, client.Get(context.Background(), "/products", nil))
		assert.Empty(t, gotAuth)
	})

	t.Run("refreshes once on 401 and retries the original request", func(t *testing.T) {
		t.Parallel()

		var refreshCalls, requestCalls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			refreshCalls.Add(1)
			_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"tok-new"}}`))
		})
		mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.NotFound(w, r)
				return
			}
			requestCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer tok-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"items":[]}}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		creds := &memCreds{token: "tok-stale"}
		client := newClient(t, srv.URL, creds)

		require.NoError(t, client.Get(context.Background(), "/cart", nil))
		assert.EqualValues(t, 1, refreshCalls.Load())
		assert.EqualValues(t, 2, requestCalls.Load())
		assert.Equal(t, "tok-new", creds.Token(context.Background()))
	})

	t.Run("second consecutive 401 clears credentials and stops", func(t *testing.T) {
		t.Parallel()

		var requestCalls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"tok-still-bad"}}`))
		})
		mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.NotFound(w, r)
				return
			}
			requestCalls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		creds := &memCreds{token: "tok-bad"}
		client := newClient(t, srv.URL, creds)

		var hookCalled atomic.Bool
		client.OnAuthExpired(func(context.Context) { hookCalled.Store(true) })

		err := client.Get(context.Background(), "/auth/me", nil)
		assert.ErrorIs(t, err, api.ErrUnauthorized)
		assert.EqualValues(t, 2, requestCalls.Load(), "original plus exactly one retry")
		assert.Empty(t, creds.Token(context.Background()))
		assert.True(t, hookCalled.Load())
	})

	t.Run("failed refresh is terminal", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.NotFound(w, r)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		creds := &memCreds{token: "tok-expired"}
		client := newClient(t, srv.URL, creds)

		err := client.Get(context.Background(), "/cart", nil)
		assert.ErrorIs(t, err, api.ErrUnauthorized)
		assert.Empty(t, creds.Token(context.Background()))
	})

	t.Run("concurrent 401s share a single refresh", func(t *testing.T) {
		t.Parallel()

		var refreshCalls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			refreshCalls.Add(1)
			time.Sleep(200 * time.Millisecond) // hold concurrent callers in the same flight
			_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"tok-new"}}`))
		})
		mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.NotFound(w, r)
				return
			}
			if r.Header.Get("Authorization") != "Bearer tok-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := newClient(t, srv.URL, &memCreds{token: "tok-stale"})

		var wg sync.WaitGroup
		start := make(chan struct{})
		errs := make([]error, 8)
		for i := range errs {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				errs[i] = client.Get(context.Background(), "/orders", nil)
			}()
		}
		close(start)
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.EqualValues(t, 1, refreshCalls.Load())
	})

	t.Run("transport failure is surfaced without retry", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, "http://127.0.0.1:1", &memCreds{})
		err := client.Get(context.Background(), "/products", nil)
		assert.ErrorIs(t, err, api.ErrTransport)
	})

	t.Run("preserves query strings", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL, &memCreds{})
		require.NoError(t, client.Get(context.Background(), "/products?page=2&sort=price", nil))
		assert.Equal(t, "page=2&sort=price", gotQuery)
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, status int, body string) (*api.Client, *captureNotifier) {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(srv.Close)

		notifier := &captureNotifier{}
		return newClient(t, srv.URL, &memCreds{}, api.WithNotifier(notifier)), notifier
	}

	t.Run("403 notifies and returns ErrForbidden", func(t *testing.T) {
		t.Parallel()

		client, notifier := serve(t, http.StatusForbidden, `{"success":false,"error":"admins only"}`)
		err := client.Get(context.Background(), "/admin/orders", nil)

		assert.ErrorIs(t, err, api.ErrForbidden)
		require.Len(t, notifier.all(), 1)
		assert.Equal(t, notify.LevelError, notifier.all()[0].Level)
	})

	t.Run("429 notifies and returns ErrRateLimited", func(t *testing.T) {
		t.Parallel()

		client, notifier := serve(t, http.StatusTooManyRequests, `{"success":false,"message":"slow down"}`)
		err := client.Get(context.Background(), "/products", nil)

		assert.ErrorIs(t, err, api.ErrRateLimited)
		require.Len(t, notifier.all(), 1)
		assert.Equal(t, notify.LevelWarning, notifier.all()[0].Level)
	})

	t.Run("500 notifies and returns ErrServer", func(t *testing.T) {
		t.Parallel()

		client, notifier := serve(t, http.StatusInternalServerError, ``)
		err := client.Get(context.Background(), "/cart", nil)

		assert.ErrorIs(t, err, api.ErrServer)
		assert.Len(t, notifier.all(), 1)
	})

	t.Run("404 is silent", func(t *testing.T) {
		t.Parallel()

		client, notifier := serve(t, http.StatusNotFound, `{"success":false,"error":"no such product"}`)
		err := client.Get(context.Background(), "/products/999", nil)

		assert.ErrorIs(t, err, api.ErrNotFound)
		assert.Empty(t, notifier.all())
	})

	t.Run("reads error field before message field", func(t *testing.T) {
		t.Parallel()

		client, _ := serve(t, http.StatusBadRequest, `{"success":false,"error":"from error","message":"from message"}`)
		err := client.Get(context.Background(), "/cart", nil)
		assert.Equal(t, "from error", api.Message(err, "fallback"))
	})

	t.Run("falls back to message field", func(t *testing.T) {
		t.Parallel()

		client, _ := serve(t, http.StatusBadRequest, `{"success":false,"message":"from message"}`)
		err := client.Get(context.Background(), "/cart", nil)
		assert.Equal(t, "from message", api.Message(err, "fallback"))
	})
}

func TestClient_IsPublicPath(t *testing.T) {
	t.Parallel()

	client, err := api.New(api.Config{
		BaseURL:     "http://localhost",
		PublicPaths: []string{"/", "/login", "/products/", "/blog/"},
	}, &memCreds{})
	require.NoError(t, err)

	assert.True(t, client.IsPublicPath("/"))
	assert.True(t, client.IsPublicPath("/login"))
	assert.True(t, client.IsPublicPath("/products"))
	assert.True(t, client.IsPublicPath("/products/42"))
	assert.True(t, client.IsPublicPath("/blog/first-ride"))
	assert.False(t, client.IsPublicPath("/account"))
	assert.False(t, client.IsPublicPath("/checkout"))
}
