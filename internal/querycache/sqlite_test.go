package querycache_test

import (
	"context"
	"testing"
	"time"

	"episodecheck/internal/querycache"
	"episodecheck/internal/testsupport"
)

func TestSQLiteGetSetExpiry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	clock := &testsupport.Clock{Now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store := testsupport.MustOpenCache(t, cfg, clock.Func())
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "query:missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "query:a", []byte(`{"a":1}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get(ctx, "query:a")
	if err != nil || !ok || string(value) != `{"a":1}` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Set(ctx, "query:a", []byte(`{"a":2}`), time.Minute); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if value, _, _ := store.Get(ctx, "query:a"); string(value) != `{"a":2}` {
		t.Fatalf("expected overwritten value, got %q", value)
	}

	clock.Advance(2 * time.Minute)
	if _, ok, err := store.Get(ctx, "query:a"); err != nil || ok {
		t.Fatalf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestSQLitePurgeAndPrune(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	clock := &testsupport.Clock{Now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store := testsupport.MustOpenCache(t, cfg, clock.Func())
	ctx := context.Background()

	for key, ttl := range map[string]time.Duration{"query:short": time.Second, "query:long": time.Hour, "query:other": time.Hour} {
		if err := store.Set(ctx, key, []byte("v"), ttl); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	clock.Advance(time.Minute)
	pruned, err := store.Prune(ctx)
	if err != nil || pruned != 1 {
		t.Fatalf("Prune: got %d err=%v want 1", pruned, err)
	}
	purged, err := store.Purge(ctx)
	if err != nil || purged != 2 {
		t.Fatalf("Purge: got %d err=%v want 2", purged, err)
	}
	if _, ok, _ := store.Get(ctx, "query:long"); ok {
		t.Fatal("expected purged entry to miss")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	first, err := querycache.OpenSQLite(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := first.Set(ctx, "query:kept", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenCache(t, cfg, nil)
	if value, ok, err := second.Get(ctx, "query:kept"); err != nil || !ok || string(value) != "v" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
	if second.Path() != cfg.Cache.Path {
		t.Fatalf("got %q want %q", second.Path(), cfg.Cache.Path)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	cfg := testsupport.NewConfig(t)
	store, err := querycache.Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*querycache.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}

	cfg = testsupport.NewConfig(t, testsupport.WithCacheBackend("none"))
	store, err = querycache.Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Open none: %v", err)
	}
	if _, ok := store.(querycache.Nop); !ok {
		t.Fatalf("expected nop store, got %T", store)
	}
	if _, ok, _ := store.Get(ctx, "anything"); ok {
		t.Fatal("nop store should never hit")
	}
}
