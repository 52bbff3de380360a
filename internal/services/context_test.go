package services_test

import (
	"context"
	"testing"

	"episodecheck/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSeriesItem(ctx, "Q100")
	ctx = services.WithRequestID(ctx, "req-123")

	if item, ok := services.SeriesItemFromContext(ctx); !ok || item != "Q100" {
		t.Fatalf("unexpected series item: %v %v", item, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSeriesItem(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.SeriesItemFromContext(ctx); ok {
		t.Fatal("expected no series item value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
