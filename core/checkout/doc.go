// Package checkout drives order placement against the backend and computes
// the display-level order summary.
//
// The summary (shipping threshold, fixed-rate tax, coupon discount) exists
// purely so the checkout page can show the same numbers the backend will
// charge; the backend remains authoritative for all pricing, and payment
// signatures are verified server-side via VerifyPayment.
package checkout
