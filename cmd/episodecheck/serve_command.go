package main

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"episodecheck/internal/api"
	"episodecheck/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve series checks as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.API.Bind = value
			}

			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another episodecheck server is already running (lock %s)", cfg.LockPath())
			}
			defer lock.Unlock() //nolint:errcheck

			runCtx := cmd.Context()
			sess, err := ctx.openSession(runCtx, true)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.logger.Info("episodecheck server starting",
				logging.String("bind", cfg.API.Bind),
				logging.String("endpoint", cfg.SPARQL.Endpoint),
				logging.String("cache_backend", cfg.Cache.Backend),
				logging.String("lock", cfg.LockPath()))
			return api.New(cfg, sess.checker, sess.logger).ListenAndServe(runCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}
