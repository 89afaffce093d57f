// Package session owns the authenticated user and access token for the
// storefront, modeled as a state machine over loading, anonymous, and
// authenticated.
//
// Only the minimal credential subset (access token plus authenticated flag)
// is persisted; the user profile is refetched from the backend on every
// rehydration so local storage never serves stale profile data. Rehydrate
// runs the authoritative network check at most once per store lifetime, and
// concurrent CheckAuth calls are coalesced into a single request.
//
// Logout is best-effort on the wire and unconditional locally: the server
// notification may fail, the local sign-out never does.
package session
