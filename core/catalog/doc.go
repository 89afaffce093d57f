// Package catalog fetches read-only product and blog listings from the
// backend. Search, filtering, and sorting all happen server-side; the
// client only shapes the query parameters.
package catalog
