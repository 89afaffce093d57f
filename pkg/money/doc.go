// Package money formats display prices. Amounts stay plain float64 rupee
// values everywhere else in the storefront; this is the one place they are
// turned into strings.
package money
