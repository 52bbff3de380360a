package config

const (
	defaultConfigPath              = "~/.config/episodecheck/config.toml"
	defaultStateDir                = "~/.local/share/episodecheck"
	defaultSPARQLEndpoint          = "https://query.wikidata.org/sparql"
	defaultSPARQLUserAgent         = "episodecheck/dev"
	defaultSPARQLTimeoutSeconds    = 60
	defaultLabelLanguage           = "en"
	defaultCacheBackend            = CacheBackendSQLite
	defaultCacheFile               = "query_cache.db"
	defaultQueryExpirySeconds      = 180
	defaultSeriesListExpirySeconds = 86400
	defaultAPIBind                 = "127.0.0.1:7488"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with defaults. Paths are left unexpanded.
// The log dir, cache path and API bind are filled in by normalization, after
// the state dir and environment are known.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		SPARQL: SPARQL{
			Endpoint:       defaultSPARQLEndpoint,
			UserAgent:      defaultSPARQLUserAgent,
			TimeoutSeconds: defaultSPARQLTimeoutSeconds,
			LabelLanguage:  defaultLabelLanguage,
		},
		Cache: Cache{
			Backend:                 defaultCacheBackend,
			QueryExpirySeconds:      defaultQueryExpirySeconds,
			SeriesListExpirySeconds: defaultSeriesListExpirySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
