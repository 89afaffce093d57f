package api

import (
	"log/slog"
	"net/http"

	"github.com/helmcraft/storefront/core/notify"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Use this to supply a
// cookie jar for the refresh credential or custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithNotifier sets the destination for user-visible failure notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the structured logger. Logging is off by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}
