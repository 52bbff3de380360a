// Package config loads, normalizes, and validates episodecheck configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks for the Redis connection and
// the API bind address. Every command and the HTTP API obtain their settings
// through Load so they see the same sanitized values.
package config
