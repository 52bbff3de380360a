package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"episodecheck/internal/config"
	"episodecheck/internal/logging"
	"episodecheck/internal/querycache"
	"episodecheck/internal/seriescheck"
	"episodecheck/internal/services"
	"episodecheck/internal/sparql"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// newLogger logs to the log file, and to stderr as well with --verbose or
// when stderr is wanted regardless (serve).
func (c *commandContext) newLogger(withStderr bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	outputs := []string{filepath.Join(cfg.Paths.LogDir, "episodecheck.log")}
	if withStderr || c.verbose() {
		outputs = append([]string{"stderr"}, outputs...)
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// session bundles what the query commands need for one invocation.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   querycache.Store
	checker *seriescheck.Checker
}

func (s *session) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (c *commandContext) openSession(ctx context.Context, withStderr bool) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.newLogger(withStderr)
	if err != nil {
		return nil, err
	}

	client, err := sparql.New(cfg.SPARQL.Endpoint, cfg.SPARQL.UserAgent,
		sparql.WithTimeout(cfg.SPARQLTimeout()),
		sparql.WithLogger(logger))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "sparql client", "", err)
	}
	store, err := querycache.Open(ctx, cfg, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "open query cache", cfg.Cache.Backend, err)
	}

	cached := querycache.NewQuerier(client, store, cfg.QueryExpiry(), logger)
	checker := seriescheck.New(cached,
		seriescheck.WithLanguage(cfg.SPARQL.LabelLanguage),
		seriescheck.WithLogger(logger),
		seriescheck.WithSeriesListQuerier(cached.WithExpiry(cfg.SeriesListExpiry())))

	return &session{cfg: cfg, logger: logger, store: store, checker: checker}, nil
}

// requestContext tags the command context with a fresh correlation id.
func requestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithRequestID(ctx, uuid.NewString())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
