package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nextread/internal/metacache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the metadata cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show metadata cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := metacache.Open(cfg)
			if err != nil {
				return fmt.Errorf("open metadata cache: %w", err)
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}

			const stampLayout = "2006-01-02 15:04"
			oldest := "-"
			if !stats.Oldest.IsZero() {
				oldest = stats.Oldest.Local().Format(stampLayout)
			}
			newest := "-"
			if !stats.Newest.IsZero() {
				newest = stats.Newest.Local().Format(stampLayout)
			}

			rows := [][]string{
				{"Database", stats.DBPath},
				{"TTL", stats.TTL.String()},
				{"Entries", strconv.Itoa(stats.Entries)},
				{"Expired", strconv.Itoa(stats.Expired)},
				{"Oldest entry", oldest},
				{"Newest entry", newest},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := metacache.Open(cfg)
			if err != nil {
				return fmt.Errorf("open metadata cache: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached record(s)\n", removed)
			return nil
		},
	}
}
