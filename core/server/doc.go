// Package server provides a minimal HTTP server wrapper with
// environment-based configuration and graceful shutdown. Run blocks until
// the context is canceled, then drains in-flight requests within the
// configured timeout.
package server
