package querycache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"episodecheck/internal/logging"
	"episodecheck/internal/sparql"
)

type purgeKey struct{}

// WithPurge marks ctx so queries run under it bypass cached values and
// replace them with fresh results.
func WithPurge(ctx context.Context) context.Context {
	return context.WithValue(ctx, purgeKey{}, true)
}

// PurgeRequested reports whether ctx was marked by WithPurge.
func PurgeRequested(ctx context.Context) bool {
	v, _ := ctx.Value(purgeKey{}).(bool)
	return v
}

// Key returns the cache key for query.
func Key(query string) string {
	return "query:" + sparql.Normalize(query)
}

// Querier serves query results from a Store, falling back to source on a
// miss.
type Querier struct {
	source sparql.Querier
	store  Store
	expiry time.Duration
	logger *slog.Logger
}

// NewQuerier wraps source with store; fresh results are kept for expiry.
func NewQuerier(source sparql.Querier, store Store, expiry time.Duration, logger *slog.Logger) *Querier {
	if store == nil {
		store = Nop{}
	}
	return &Querier{
		source: source,
		store:  store,
		expiry: expiry,
		logger: logging.NewComponentLogger(logger, "querycache"),
	}
}

// WithExpiry returns a Querier sharing the same source and store that keeps
// results for ttl instead.
func (q *Querier) WithExpiry(ttl time.Duration) *Querier {
	clone := *q
	clone.expiry = ttl
	return &clone
}

// Run implements sparql.Querier.
func (q *Querier) Run(ctx context.Context, query, reason string) (*sparql.Result, error) {
	key := Key(query)
	logger := logging.WithContext(ctx, q.logger)

	if !PurgeRequested(ctx) {
		if result, ok := q.lookup(ctx, logger, key); ok {
			logger.Debug("query served from cache", logging.String(logging.FieldQueryReason, reason))
			return result, nil
		}
	}

	result, err := q.source.Run(ctx, query, reason)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		logging.WarnWithContext(logger, "query result could not be encoded for the cache", "cache_encode_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the same query will be sent again next time"))
		return result, nil
	}
	if err := q.store.Set(ctx, key, encoded, q.expiry); err != nil {
		logging.WarnWithContext(logger, "query result could not be cached", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the cache backend is reachable"),
			logging.String(logging.FieldImpact, "the same query will be sent again next time"))
	}
	return result, nil
}

func (q *Querier) lookup(ctx context.Context, logger *slog.Logger, key string) (*sparql.Result, bool) {
	raw, ok, err := q.store.Get(ctx, key)
	if err != nil {
		logging.WarnWithContext(logger, "query cache read failed", "cache_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the cache backend is reachable"),
			logging.String(logging.FieldImpact, "query sent to the endpoint instead"))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var result sparql.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		logging.WarnWithContext(logger, "cached query result is corrupt", "cache_decode_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "query sent to the endpoint instead"))
		return nil, false
	}
	return &result, true
}

// Purge clears the underlying store.
func (q *Querier) Purge(ctx context.Context) (int, error) {
	return q.store.Purge(ctx)
}
