package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSPARQL()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeAPI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSPARQL() {
	c.SPARQL.Endpoint = strings.TrimSpace(c.SPARQL.Endpoint)
	if c.SPARQL.Endpoint == "" {
		c.SPARQL.Endpoint = defaultSPARQLEndpoint
	}
	c.SPARQL.UserAgent = strings.TrimSpace(c.SPARQL.UserAgent)
	if c.SPARQL.UserAgent == "" {
		c.SPARQL.UserAgent = defaultSPARQLUserAgent
	}
	c.SPARQL.LabelLanguage = strings.TrimSpace(c.SPARQL.LabelLanguage)
	if c.SPARQL.LabelLanguage == "" {
		c.SPARQL.LabelLanguage = defaultLabelLanguage
	}
}

func (c *Config) normalizeCache() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	if c.Cache.RedisURL == "" {
		if value, ok := os.LookupEnv("REDIS_URL"); ok {
			c.Cache.RedisURL = strings.TrimSpace(value)
		}
	}
	if c.Cache.RedisPrefix == "" {
		if value, ok := os.LookupEnv("REDIS_PREFIX"); ok {
			c.Cache.RedisPrefix = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = filepath.Join(c.Paths.StateDir, defaultCacheFile)
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		if value, ok := os.LookupEnv("EPISODECHECK_API_BIND"); ok {
			c.API.Bind = strings.TrimSpace(value)
		}
	}
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Token == "" {
		c.API.Token = strings.TrimSpace(os.Getenv("EPISODECHECK_API_TOKEN"))
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text":
		c.Logging.Format = "console"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
