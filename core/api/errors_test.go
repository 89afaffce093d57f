package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcraft/storefront/core/api"
)

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, api.ErrUnauthorized},
		{http.StatusForbidden, api.ErrForbidden},
		{http.StatusNotFound, api.ErrNotFound},
		{http.StatusTooManyRequests, api.ErrRateLimited},
		{http.StatusInternalServerError, api.ErrServer},
		{http.StatusBadGateway, api.ErrServer},
		{http.StatusBadRequest, api.ErrBadRequest},
		{http.StatusConflict, api.ErrBadRequest},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			t.Parallel()

			err := &api.Error{Status: tc.status}
			assert.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	t.Run("uses backend message when present", func(t *testing.T) {
		t.Parallel()

		err := &api.Error{Status: 400, Message: "quantity must be positive"}
		assert.Equal(t, "quantity must be positive", err.Error())
	})

	t.Run("falls back to status text", func(t *testing.T) {
		t.Parallel()

		err := &api.Error{Status: 503}
		assert.Equal(t, http.StatusText(503), err.Error())
	})
}

func TestMessage(t *testing.T) {
	t.Parallel()

	t.Run("extracts backend message through wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("add to cart: %w", &api.Error{Status: 400, Message: "out of stock"})
		assert.Equal(t, "out of stock", api.Message(err, "fallback"))
	})

	t.Run("falls back for plain errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "fallback", api.Message(errors.New("boom"), "fallback"))
	})

	t.Run("falls back for empty backend message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "fallback", api.Message(&api.Error{Status: 500}, "fallback"))
	})
}
