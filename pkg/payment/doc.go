// Package payment bridges the storefront to the third-party payment widget.
//
// The bridge loads the gateway's checkout script on demand (at most one
// successful load per bridge), opens the payment modal from an order id and
// amount, and funnels every outcome into caller-supplied callbacks. Three
// distinct failure channels — the widget's failure event, user dismissal,
// and synchronous errors or panics while opening — all reach the same
// OnFailure callback. Success carries the gateway order id, payment id, and
// signature; verification of that signature is strictly the backend's job.
package payment
