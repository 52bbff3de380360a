package testsupport

import (
	"testing"
	"time"

	"episodecheck/internal/config"
	"episodecheck/internal/querycache"
)

// MustOpenCache opens the SQLite query cache configured by cfg and registers
// cleanup. A non-nil now replaces the store's clock.
func MustOpenCache(t testing.TB, cfg *config.Config, now func() time.Time) *querycache.SQLiteStore {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store, err := querycache.OpenSQLite(cfg.Cache.Path, querycache.WithClock(now))
	if err != nil {
		t.Fatalf("querycache.OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Clock is a settable time source for expiry tests.
type Clock struct {
	Now time.Time
}

// Func returns the clock as a time source.
func (c *Clock) Func() func() time.Time {
	return func() time.Time { return c.Now }
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.Now = c.Now.Add(d)
}
