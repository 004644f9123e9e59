// Package logging constructs the slog loggers used across splice.
//
// It provides console and JSON handlers, a no-op logger for tests, and
// helpers for stamping a component attribute on derived loggers.
package logging
