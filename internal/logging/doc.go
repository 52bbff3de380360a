// Package logging assembles the structured slog loggers used across
// episodecheck.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so a check run tags every line
// with its request id and series item. NewNop serves tests and wiring code
// that cannot fail.
package logging
