package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/helmcraft/storefront/core/api"
	"github.com/helmcraft/storefront/core/cart"
	"github.com/helmcraft/storefront/core/session"
)

// envelope mirrors the backend's response shape so the frontend sees one
// format end to end.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: status < http.StatusBadRequest, Data: data})
}

// writeError maps client-layer errors onto HTTP statuses. Backend errors
// carry their original status through.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, session.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, cart.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, api.ErrTransport):
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: api.Message(err, "Something went wrong")})
}

// decode parses the JSON request body. On failure it writes a 400 and
// reports false.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(envelope{Error: "Invalid request body"})
		return false
	}
	return true
}
