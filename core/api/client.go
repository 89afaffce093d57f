package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/helmcraft/storefront/core/logger"
	"github.com/helmcraft/storefront/core/notify"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
	bearerPrefix        = "Bearer "
)

// CredentialStore holds the access token the client attaches to outbound
// requests. The session store owns the canonical implementation; the client
// only reads, replaces after a refresh, and clears on terminal auth failure.
type CredentialStore interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// envelope is the backend's response convention: {success, data, error?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// errorMessage reads the error field first, the message field second.
func (e envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Client wraps outbound requests to the backend API with base URL
// resolution, bearer-token injection, and a single automatic refresh-retry
// on 401. It is safe for concurrent use.
type Client struct {
	baseURL     string
	refreshPath string
	loginPath   string
	httpClient  *http.Client
	creds       CredentialStore
	notifier    notify.Notifier
	log         *slog.Logger
	publicPaths []string

	// refreshGroup coalesces concurrent refresh attempts: N requests
	// failing with 401 at once produce a single refresh call.
	refreshGroup singleflight.Group

	authExpired func(ctx context.Context)
}

// New creates a backend API client.
func New(cfg Config, creds CredentialStore, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if creds == nil {
		return nil, ErrMissingCredentialStore
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		refreshPath: cfg.RefreshPath,
		loginPath:   cfg.LoginPath,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		creds:       creds,
		notifier:    notify.Nop{},
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		publicPaths: cfg.PublicPaths,
	}
	if c.refreshPath == "" {
		c.refreshPath = "/auth/refresh-token"
	}
	if c.loginPath == "" {
		c.loginPath = "/login"
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// OnAuthExpired registers the hook invoked after a terminal 401: credentials
// are already cleared when it runs. The session store uses it to drop its
// in-memory state; the presentation layer to navigate to the login page.
func (c *Client) OnAuthExpired(fn func(ctx context.Context)) {
	c.authExpired = fn
}

// IsPublicPath reports whether route is in the allow-list of paths that can
// be shown without authentication. Entries ending in "/" match by prefix.
func (c *Client) IsPublicPath(route string) bool {
	for _, p := range c.publicPaths {
		if strings.HasSuffix(p, "/") && p != "/" {
			if strings.HasPrefix(route, p) || route == strings.TrimRight(p, "/") {
				return true
			}
			continue
		}
		if route == p {
			return true
		}
	}
	return false
}

// LoginPath returns the login entry point for post-sign-out navigation.
func (c *Client) LoginPath() string {
	return c.loginPath
}

// Do performs an API request and decodes the envelope's data field into
// result when non-nil. A 401 response triggers at most one token refresh
// followed by one retry of the original request.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	return c.do(ctx, method, path, body, result, false)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, result)
}

// do carries the retried flag explicitly instead of marking the request
// descriptor, so a retry is a fresh request that cannot loop.
func (c *Client) do(ctx context.Context, method, path string, body, result any, retried bool) error {
	resp, respBody, err := c.roundTrip(ctx, method, path, body, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if retried {
			return c.signOut(ctx)
		}
		if err := c.refreshToken(ctx); err != nil {
			return c.signOut(ctx)
		}
		return c.do(ctx, method, path, body, result, true)
	}

	if resp.StatusCode >= 400 {
		return c.classify(ctx, resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return errors.Join(ErrDecode, err)
		}
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, result); err != nil {
				return errors.Join(ErrDecode, err)
			}
		}
	}

	return nil
}

// roundTrip executes a single HTTP exchange and drains the body.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, []byte, error) {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, nil, errors.Join(ErrTransport, err)
	}
	// JoinPath escapes query strings, so splice them back verbatim.
	if i := strings.IndexByte(path, '?'); i >= 0 {
		base, _ := url.JoinPath(c.baseURL, path[:i])
		reqURL = base + path[i:]
	}

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, nil, errors.Join(ErrTransport, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, nil, errors.Join(ErrTransport, err)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if withAuth {
		if token := c.creds.Token(ctx); token != "" {
			req.Header.Set(headerAuthorization, bearerPrefix+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Join(ErrTransport, err)
	}

	return resp, respBody, nil
}

// refreshToken performs the single refresh attempt. The refresh credential
// travels out-of-band (HTTP-only cookie on the underlying http.Client's
// jar), so the request itself carries no Authorization header. Concurrent
// callers share one in-flight refresh.
func (c *Client) refreshToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		resp, respBody, err := c.roundTrip(ctx, http.MethodPost, c.refreshPath, nil, false)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, &Error{Status: resp.StatusCode, Message: "refresh failed"}
		}

		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return nil, errors.Join(ErrDecode, err)
		}
		var data struct {
			AccessToken string `json:"accessToken"`
		}
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return nil, errors.Join(ErrDecode, err)
			}
		}
		if data.AccessToken == "" {
			return nil, ErrUnauthorized
		}

		return nil, c.creds.SetToken(ctx, data.AccessToken)
	})
	return err
}

// signOut is the terminal 401 path: clear local credential state, run the
// auth-expired hook, surface ErrUnauthorized. No further retries.
func (c *Client) signOut(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Warn("failed to clear credentials", logger.Component("api"), logger.Error(err))
	}
	if c.authExpired != nil {
		c.authExpired(ctx)
	}
	return ErrUnauthorized
}

// classify turns a non-401 error response into a structured error and emits
// the user-visible notification the status class calls for. 404 stays
// silent: many call sites treat it as an expected outcome.
func (c *Client) classify(ctx context.Context, status int, respBody []byte) error {
	var env envelope
	_ = json.Unmarshal(respBody, &env)

	apiErr := &Error{Status: status, Message: env.errorMessage()}

	switch {
	case status == http.StatusForbidden:
		notify.Error(ctx, c.notifier, "You don't have permission to perform this action")
	case status == http.StatusTooManyRequests:
		notify.Warning(ctx, c.notifier, "Too many requests, please try again in a moment")
	case status >= 500:
		notify.Error(ctx, c.notifier, "Something went wrong on our end, please try again")
	}

	c.log.Debug("api request failed",
		logger.Component("api"),
		logger.StatusCode(status),
		logger.Error(apiErr),
	)

	return apiErr
}
