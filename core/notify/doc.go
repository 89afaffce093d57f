// Package notify carries transient user-visible notifications from store
// actions to the presentation layer.
//
// Store actions emit through the Notifier interface and never depend on
// delivery: a notification is an additive side effect, while the error
// itself always propagates to the caller. The channel-backed Bus is the
// default implementation for a single-instance app; Nop silences emission
// entirely.
package notify
