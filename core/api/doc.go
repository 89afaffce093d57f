// Package api wraps outbound requests to the storefront's backend with base
// URL resolution, per-request timeout, bearer-token injection, and a single
// automatic refresh-retry flow on 401.
//
// The retry discipline is explicit: a request that receives 401 triggers
// exactly one refresh attempt (coalesced across concurrent callers), then
// one retry of the original request. A second 401 is terminal: local
// credential state is cleared, the registered auth-expired hook runs, and
// ErrUnauthorized is returned. The retried state travels as a function
// parameter, never as a mutated request field.
//
// Non-auth failures are classified into sentinel errors and, for 403, 429,
// and 5xx, additionally surfaced as user-visible notifications. 404 is
// returned silently. Every failure propagates to the caller regardless of
// notification side effects.
package api
