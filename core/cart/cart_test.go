package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcraft/storefront/core/cart"
)

func ptr(v float64) *float64 { return &v }

func TestCart_Totals(t *testing.T) {
	t.Parallel()

	t.Run("two items without discount", func(t *testing.T) {
		t.Parallel()

		c := &cart.Cart{Items: []cart.Item{
			{ID: "i1", Name: "MT Thunder 4", Price: 1200, Quantity: 2},
			{ID: "i2", Name: "Axor Apex", Price: 800, Quantity: 1},
		}}

		assert.Equal(t, 3, c.TotalItems())
		assert.Equal(t, 3200.0, c.TotalPrice())
	})

	t.Run("discount price wins over base price", func(t *testing.T) {
		t.Parallel()

		c := &cart.Cart{Items: []cart.Item{
			{ID: "i1", Price: 5000, DiscountPrice: ptr(4200), Quantity: 2},
		}}

		assert.Equal(t, 8400.0, c.TotalPrice())
	})

	t.Run("variant surcharge is added before multiplying", func(t *testing.T) {
		t.Parallel()

		c := &cart.Cart{Items: []cart.Item{
			{ID: "i1", Price: 1000, DiscountPrice: ptr(900), VariantSurcharge: 150, Quantity: 3},
		}}

		// (900 + 150) × 3
		assert.Equal(t, 3150.0, c.TotalPrice())
	})

	t.Run("nil cart totals are zero", func(t *testing.T) {
		t.Parallel()

		var c *cart.Cart
		assert.Equal(t, 0, c.TotalItems())
		assert.Equal(t, 0.0, c.TotalPrice())
	})

	t.Run("empty cart totals are zero", func(t *testing.T) {
		t.Parallel()

		c := &cart.Cart{}
		assert.Equal(t, 0, c.TotalItems())
		assert.Equal(t, 0.0, c.TotalPrice())
	})
}

func TestItem_EffectivePrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1200.0, cart.Item{Price: 1200}.EffectivePrice())
	assert.Equal(t, 999.0, cart.Item{Price: 1200, DiscountPrice: ptr(999)}.EffectivePrice())
}
