// Package cart caches the server-synchronized shopping cart and computes
// its derived totals.
//
// The backend is the single source of truth: every mutation issues one
// request and replaces the whole local cart with the server's response, so
// the client never merges or recomputes pricing beyond display. Failed
// mutations leave the previous cart untouched and surface the backend's
// message as a notification; failed background fetches are silent.
//
// Totals are pure functions of the current item list, recomputed on every
// read, so they can never drift from the items array.
package cart
