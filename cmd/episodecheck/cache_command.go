package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"episodecheck/internal/config"
	"episodecheck/internal/querycache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the query result cache",
	}
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	return cacheCmd
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove every cached query result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, ctx, func(reqCtx context.Context, cfg *config.Config, store querycache.Store) error {
				removed, err := store.Purge(reqCtx)
				if err != nil {
					return fmt.Errorf("purge cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the %s cache\n", plural(removed, "cached query", "cached queries"), cfg.Cache.Backend)
				return nil
			})
		},
	}
}

type pruner interface {
	Prune(ctx context.Context) (int, error)
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached query results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, ctx, func(reqCtx context.Context, cfg *config.Config, store querycache.Store) error {
				p, ok := store.(pruner)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "The %s cache expires entries on its own\n", cfg.Cache.Backend)
					return nil
				}
				removed, err := p.Prune(reqCtx)
				if err != nil {
					return fmt.Errorf("prune cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", plural(removed, "expired query", "expired queries"))
				return nil
			})
		},
	}
}

func withStore(cmd *cobra.Command, ctx *commandContext, fn func(context.Context, *config.Config, querycache.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger(false)
	if err != nil {
		return err
	}
	reqCtx := requestContext(cmd)
	store, err := querycache.Open(reqCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open query cache: %w", err)
	}
	defer store.Close()
	return fn(reqCtx, cfg, store)
}
