// Package querycache keeps query service results for a while so repeated
// checks of the same series do not hit the endpoint again.
//
// Results are stored under "query:<normalized query>" in one of three
// backends: a local SQLite database, Redis, or nothing at all. Querier wraps a
// sparql.Querier with the cache; cache failures are logged and the query goes
// to the source, so a broken cache only costs latency.
package querycache
