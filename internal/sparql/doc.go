// Package sparql talks to a SPARQL endpoint (the Wikidata query service by
// default) and models its JSON result format.
//
// The Querier interface is the single seam between the episode checks and the
// outside world: callers hand it query text plus a human-readable reason and get
// back tabular bindings or an ASK boolean. Client implements it over HTTP,
// Recorder wraps any Querier to keep an audit of every query issued, and the
// querycache package decorates it with a time-bounded cache.
//
// Query templates for every lookup the checker performs live in queries.go so
// the exact text that reaches the endpoint is reviewable in one place.
package sparql
