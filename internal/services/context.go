package services

import "context"

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	seriesItemKey contextKey = "series_item"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSeriesItem annotates context with the series under check.
func WithSeriesItem(ctx context.Context, item string) context.Context {
	if item == "" {
		return ctx
	}
	return context.WithValue(ctx, seriesItemKey, item)
}

// SeriesItemFromContext returns the series under check if present.
func SeriesItemFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(seriesItemKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
