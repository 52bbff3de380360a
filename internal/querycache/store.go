package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"episodecheck/internal/config"
	"episodecheck/internal/logging"
)

// Store persists cached values with an expiry.
type Store interface {
	// Get returns the value for key; ok is false on a miss or when the
	// value has expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Purge removes every cached value and reports how many were removed.
	Purge(ctx context.Context) (int, error)
	Close() error
}

// Open constructs the store selected by cfg.Cache.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	logger = logging.NewComponentLogger(logger, "querycache")
	switch cfg.Cache.Backend {
	case config.CacheBackendSQLite:
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, fmt.Errorf("ensure directories: %w", err)
		}
		store, err := OpenSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("query cache opened", logging.String("backend", cfg.Cache.Backend), logging.String("path", cfg.Cache.Path))
		return store, nil
	case config.CacheBackendRedis:
		store, err := DialRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.RedisPrefix)
		if err != nil {
			return nil, err
		}
		logger.Debug("query cache opened", logging.String("backend", cfg.Cache.Backend), logging.String("prefix", cfg.Cache.RedisPrefix))
		return store, nil
	case config.CacheBackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
	}
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Nop) Purge(context.Context) (int, error) { return 0, nil }

func (Nop) Close() error { return nil }
