package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSPARQL(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSPARQL() error {
	endpoint, err := url.Parse(c.SPARQL.Endpoint)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return fmt.Errorf("sparql.endpoint must be an absolute http(s) URL, got %q", c.SPARQL.Endpoint)
	}
	if c.SPARQL.UserAgent == "" {
		return errors.New("sparql.user_agent must be set")
	}
	if c.SPARQL.TimeoutSeconds <= 0 {
		return errors.New("sparql.timeout_seconds must be positive")
	}
	if _, err := language.Parse(c.SPARQL.LabelLanguage); err != nil {
		return fmt.Errorf("sparql.label_language %q is not a valid language tag: %w", c.SPARQL.LabelLanguage, err)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite:
		if c.Cache.Path == "" {
			return errors.New("cache.path must be set for the sqlite backend")
		}
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New("cache.redis_url is required for the redis backend. Set REDIS_URL env var or edit the config file")
		}
		if c.Cache.RedisPrefix == "" {
			return errors.New("cache.redis_prefix is required for the redis backend. Set REDIS_PREFIX env var or edit the config file")
		}
	case CacheBackendNone:
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (want sqlite, redis or none)", c.Cache.Backend)
	}
	if c.Cache.QueryExpirySeconds <= 0 {
		return errors.New("cache.query_expiry_seconds must be positive")
	}
	if c.Cache.SeriesListExpirySeconds <= 0 {
		return errors.New("cache.series_list_expiry_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.Bind == "" {
		return errors.New("api.bind must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
