// Package services defines shared utilities consumed by the check pipeline,
// the CLI and the HTTP API.
//
// Key responsibilities:
//   - Context helpers that stamp request identifiers and the series being
//     checked for logging.
//   - Structured error markers plus the Wrap helper, and the mapping from
//     those markers to HTTP statuses.
package services
