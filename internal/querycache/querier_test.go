package querycache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"episodecheck/internal/querycache"
	"episodecheck/internal/testsupport"
)

type brokenStore struct{ querycache.Nop }

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

const seriesQuery = "SELECT ?seriesLabel WHERE { BIND(wd:Q100 as ?series) }"

func TestQuerierServesFromCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg, nil)
	source := (&testsupport.FakeQuerier{}).Select("?seriesLabel", testsupport.Row("seriesLabel", "Test Series"))
	q := querycache.NewQuerier(source, store, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := q.Run(ctx, seriesQuery, "label")
		if err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		if got := result.Values("seriesLabel"); len(got) != 1 || got[0] != "Test Series" {
			t.Fatalf("Run %d: unexpected values %v", i, got)
		}
	}
	if n := len(source.Calls()); n != 1 {
		t.Fatalf("expected one source call, got %d", n)
	}

	// Whitespace differences share a cache key.
	if _, err := q.Run(ctx, "SELECT ?seriesLabel  WHERE {\n BIND(wd:Q100 as ?series) }", "label"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := len(source.Calls()); n != 1 {
		t.Fatalf("expected normalized query to hit cache, got %d calls", n)
	}
}

func TestQuerierPurgeAndExpiry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	clock := &testsupport.Clock{Now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := testsupport.MustOpenCache(t, cfg, clock.Func())
	source := (&testsupport.FakeQuerier{}).Ask("ASK", true)
	q := querycache.NewQuerier(source, store, time.Minute, nil)
	ctx := context.Background()

	run := func(ctx context.Context) {
		t.Helper()
		if _, err := q.Run(ctx, "ASK WHERE { wd:Q100 ?p ?o }", "ask"); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	run(ctx)
	run(querycache.WithPurge(ctx))
	if n := len(source.Calls()); n != 2 {
		t.Fatalf("expected purge to refetch, got %d calls", n)
	}
	run(ctx)
	if n := len(source.Calls()); n != 2 {
		t.Fatalf("expected cached result after purge refetch, got %d calls", n)
	}

	clock.Advance(2 * time.Minute)
	run(ctx)
	if n := len(source.Calls()); n != 3 {
		t.Fatalf("expected expired entry to refetch, got %d calls", n)
	}

	long := q.WithExpiry(time.Hour)
	if _, err := long.Run(ctx, "ASK WHERE { wd:Q200 ?p ?o }", "ask"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	clock.Advance(30 * time.Minute)
	if _, err := long.Run(ctx, "ASK WHERE { wd:Q200 ?p ?o }", "ask"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := len(source.Calls()); n != 4 {
		t.Fatalf("expected long expiry to hold, got %d calls", n)
	}

	cached, err := q.Run(ctx, "ASK WHERE { wd:Q200 ?p ?o }", "ask")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok, err := cached.Ask(); err != nil || !ok {
		t.Fatalf("expected cached boolean, got %v err=%v", ok, err)
	}

	purged, err := q.Purge(ctx)
	if err != nil || purged != 2 {
		t.Fatalf("Purge: got %d err=%v want 2", purged, err)
	}
}

func TestQuerierFallsThroughBrokenCache(t *testing.T) {
	source := (&testsupport.FakeQuerier{}).Ask("ASK", false)
	q := querycache.NewQuerier(source, brokenStore{}, time.Minute, nil)

	for i := 0; i < 2; i++ {
		result, err := q.Run(context.Background(), "ASK {}", "ask")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if ok, _ := result.Ask(); ok {
			t.Fatal("expected false")
		}
	}
	if n := len(source.Calls()); n != 2 {
		t.Fatalf("expected every call to reach source, got %d", n)
	}
}

func TestQuerierPropagatesSourceErrors(t *testing.T) {
	boom := errors.New("endpoint down")
	source := (&testsupport.FakeQuerier{}).Fail("ASK", boom)
	q := querycache.NewQuerier(source, querycache.Nop{}, time.Minute, nil)
	if _, err := q.Run(context.Background(), "ASK {}", "ask"); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
