// Package logging builds the slog loggers used across cradle.
//
// It provides console and JSON handlers, typed attribute helpers, and
// component loggers so every subsystem tags its records consistently.
package logging
