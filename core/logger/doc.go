// Package logger provides structured logging utilities built on Go's standard
// slog package: a factory with environment presets and a set of pre-built
// attribute helpers for common logging scenarios.
//
// Basic usage:
//
//	import "github.com/helmcraft/storefront/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("storefront"))
//
//	// Production: JSON format, info level
//	log := logger.New(logger.WithProduction("storefront"))
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Attribute helpers are nil-safe: logger.Error(nil) yields an empty attribute
// that slog drops, so call sites never need explicit nil checks.
package logger
