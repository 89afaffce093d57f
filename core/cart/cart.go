package cart

// Item is one line of the server-owned cart, carrying the pricing snapshot
// needed to display totals. The client never mutates pricing itself.
type Item struct {
	ID               string   `json:"id"`
	ProductID        string   `json:"productId"`
	VariantID        string   `json:"variantId,omitempty"`
	Name             string   `json:"name"`
	Image            string   `json:"image,omitempty"`
	Quantity         int      `json:"quantity"`
	Price            float64  `json:"price"`
	DiscountPrice    *float64 `json:"discountPrice,omitempty"`
	VariantSurcharge float64  `json:"variantSurcharge,omitempty"`
}

// EffectivePrice is the discounted price when present, else the base price.
func (i Item) EffectivePrice() float64 {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}

// LineTotal is (effective price + variant surcharge) × quantity.
func (i Item) LineTotal() float64 {
	return (i.EffectivePrice() + i.VariantSurcharge) * float64(i.Quantity)
}

// Cart is the last known server state. The backend is the source of truth;
// this is only a cache of its most recent response.
type Cart struct {
	ID    string `json:"id,omitempty"`
	Items []Item `json:"items"`
}

// TotalItems is the sum of all item quantities. Zero for a nil cart.
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of line totals. Zero for a nil or empty cart.
func (c *Cart) TotalPrice() float64 {
	if c == nil {
		return 0
	}
	total := 0.0
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}
