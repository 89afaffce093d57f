package payment

import (
	"context"
	"net/http"
	"time"
)

// HTTPScriptLoader verifies the checkout script is reachable by fetching it
// from the gateway's CDN.
type HTTPScriptLoader struct {
	client *http.Client
}

// NewHTTPScriptLoader creates a loader with its own short-timeout client
// unless one is supplied.
func NewHTTPScriptLoader(client *http.Client) *HTTPScriptLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPScriptLoader{client: client}
}

// Load reports whether the script could be fetched. All failures collapse
// to false by contract.
func (l *HTTPScriptLoader) Load(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}
