package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// symbols maps the currencies the storefront sells in to their display
// symbols. Anything else falls back to the ISO code.
var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// DefaultCurrency is assumed when a price carries no currency code.
const DefaultCurrency = "INR"

// Format renders an amount for display with locale-aware digit grouping,
// e.g. Format(3776, "INR") → "₹3,776.00". Unknown codes fall back to the
// default currency.
func Format(amount float64, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	if _, err := currency.ParseISO(code); err != nil {
		code = DefaultCurrency
	}

	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}

	p := message.NewPrinter(language.English)
	return p.Sprintf("%s%.2f", symbol, amount)
}
