package querycache_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"episodecheck/internal/querycache"
)

func TestNewRedisStoreRequiresPrefix(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	if _, err := querycache.NewRedisStore(client, "  "); !errors.Is(err, querycache.ErrMissingPrefix) {
		t.Fatalf("expected ErrMissingPrefix, got %v", err)
	}
	if _, err := querycache.DialRedis(context.Background(), "redis://127.0.0.1:0", ""); !errors.Is(err, querycache.ErrMissingPrefix) {
		t.Fatalf("expected ErrMissingPrefix from DialRedis, got %v", err)
	}

	store, err := querycache.NewRedisStore(client, "tv")
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	if got := store.Key(querycache.Key("ASK {}")); got != "tv:query:ASK {}" {
		t.Fatalf("got %q want %q", got, "tv:query:ASK {}")
	}
}

func TestDialRedisRejectsBadURL(t *testing.T) {
	if _, err := querycache.DialRedis(context.Background(), "not a url", "tv"); err == nil {
		t.Fatal("expected parse error")
	}
}

// Runs against a real server when REDIS_URL is set.
func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	store, err := querycache.DialRedis(ctx, url, "episodecheck-test-"+time.Now().Format("150405.000000"))
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "query:a", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if value, ok, err := store.Get(ctx, "query:a"); err != nil || !ok || string(value) != "v" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", value, ok, err)
	}
	if n, err := store.Purge(ctx); err != nil || n != 1 {
		t.Fatalf("Purge: got %d err=%v", n, err)
	}
	if _, ok, _ := store.Get(ctx, "query:a"); ok {
		t.Fatal("expected purged key to miss")
	}
}
