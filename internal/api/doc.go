// Package api serves series checks over HTTP as JSON.
//
// # Routes
//
// GET /api/series/{item}: full check of one series. ?purge=yes bypasses the
// query cache and replaces the cached results.
//
// GET /api/series/{item}/random: one episode picked at random.
//
// GET /api/series: every television series, or ?q=text to search by name.
//
// GET /api/status: server uptime and cache backend.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Report messages are plain text; rendering them
// is left to the consumer. Errors are returned as {"error": "..."} with the
// status chosen by services.HTTPStatus.
package api
