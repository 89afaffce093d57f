package checkout

import "math"

// SummaryConfig provides environment-based configuration for the
// display-level order summary. Authoritative pricing stays server-side;
// these values only mirror what the backend charges so the summary shown
// before checkout matches the final order.
type SummaryConfig struct {
	FreeShippingThreshold float64 `env:"CHECKOUT_FREE_SHIPPING_THRESHOLD" envDefault:"999"`
	ShippingFee           float64 `env:"CHECKOUT_SHIPPING_FEE" envDefault:"99"`
	TaxRate               float64 `env:"CHECKOUT_TAX_RATE" envDefault:"0.18"`
}

// DefaultSummaryConfig returns the standard storefront rates.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		FreeShippingThreshold: 999,
		ShippingFee:           99,
		TaxRate:               0.18,
	}
}

// Summary is the order cost breakdown shown on the checkout page.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Summarize computes the display breakdown for a subtotal and an optional
// coupon discount. Shipping is free at or above the threshold; tax is the
// fixed rate rounded to the nearest unit.
func Summarize(cfg SummaryConfig, subtotal, discount float64) Summary {
	if subtotal <= 0 {
		return Summary{}
	}

	shipping := cfg.ShippingFee
	if subtotal >= cfg.FreeShippingThreshold {
		shipping = 0
	}

	tax := math.Round(subtotal * cfg.TaxRate)

	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + shipping + tax - discount,
	}
}
