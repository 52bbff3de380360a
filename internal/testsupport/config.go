package testsupport

import (
	"path/filepath"
	"testing"

	"episodecheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a valid config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Cache.Path = filepath.Join(base, "state", "query_cache.db")
	cfgVal.SPARQL.UserAgent = "episodecheck-test/1.0"
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithEndpoint points the SPARQL client at url, typically an httptest server.
func WithEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SPARQL.Endpoint = url
	}
}

// WithCacheBackend selects the query cache backend.
func WithCacheBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = backend
	}
}

// WithRedis selects the redis backend with the given connection details.
func WithRedis(url, prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = config.CacheBackendRedis
		b.cfg.Cache.RedisURL = url
		b.cfg.Cache.RedisPrefix = prefix
	}
}

// WithAPIToken requires token as the API bearer token.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.Token = token
	}
}
