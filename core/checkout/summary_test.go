package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcraft/storefront/core/checkout"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	cfg := checkout.DefaultSummaryConfig()

	t.Run("free shipping above the threshold with 18 percent tax", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 3200, 0)

		assert.Equal(t, 3200.0, s.Subtotal)
		assert.Equal(t, 0.0, s.Shipping)
		assert.Equal(t, 576.0, s.Tax)
		assert.Equal(t, 3776.0, s.Total)
	})

	t.Run("charges shipping just below the threshold", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 998, 0)
		assert.Equal(t, 99.0, s.Shipping)
	})

	t.Run("free shipping exactly at the threshold", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 999, 0)
		assert.Equal(t, 0.0, s.Shipping)
	})

	t.Run("tax is rounded to the nearest unit", func(t *testing.T) {
		t.Parallel()

		// 1001 × 0.18 = 180.18 → 180
		s := checkout.Summarize(cfg, 1001, 0)
		assert.Equal(t, 180.0, s.Tax)
	})

	t.Run("coupon discount reduces the total", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 3200, 200)
		assert.Equal(t, 200.0, s.Discount)
		assert.Equal(t, 3576.0, s.Total)
	})

	t.Run("discount is clamped to the subtotal", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 500, 9000)
		assert.Equal(t, 500.0, s.Discount)
	})

	t.Run("negative discount is ignored", func(t *testing.T) {
		t.Parallel()

		s := checkout.Summarize(cfg, 3200, -50)
		assert.Equal(t, 0.0, s.Discount)
		assert.Equal(t, 3776.0, s.Total)
	})

	t.Run("zero subtotal yields an empty summary", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, checkout.Summary{}, checkout.Summarize(cfg, 0, 0))
	})
}
