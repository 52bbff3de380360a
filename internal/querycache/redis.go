package querycache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 5 * time.Second
	redisScanBatch   = 500
)

// ErrMissingPrefix is returned when a Redis store is built without a key
// prefix. Purge deletes by prefix, so an empty one would clear the database.
var ErrMissingPrefix = errors.New("redis key prefix is required")

// RedisStore keeps cached values in Redis under "<prefix>:<key>".
type RedisStore struct {
	client *goredis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *goredis.Client, prefix string) (*RedisStore, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrMissingPrefix
	}
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// DialRedis connects to the server at url and checks it answers.
func DialRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrMissingPrefix
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = redisDialTimeout
	}
	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client, prefix)
}

// Key returns the Redis key a cache key is stored under.
func (s *RedisStore) Key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.Key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Purge(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	pattern := s.prefix + ":*"
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, redisScanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
