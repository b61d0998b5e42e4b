// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/scholar"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or prune the author profile cache",
	Long: `Cache manages the SQLite file that remembers Semantic Scholar answers
between runs (scholar.cache_path or --cache). Entries older than
scholar.cache_ttl are ignored by runs and removed by prune.`,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries",
	RunE:  runCachePrune,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "", "SQLite author profile cache")
	cacheCmd.PersistentFlags().String("profile", "", "interest profile YAML")

	cacheCmd.AddCommand(cachePruneCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache(cmd *cobra.Command) (*scholar.Cache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openCacheFor(cfg)
}

func openCacheFor(cfg types.DigestConfig) (*scholar.Cache, error) {
	if cfg.Scholar.CachePath == "" {
		return nil, errors.New("no cache configured: set scholar.cache_path or pass --cache")
	}
	return scholar.OpenCache(cfg.Scholar.CachePath, cfg.Scholar.CacheTTL)
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cache.Close()

	removed, err := cache.Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "pruned %d expired entries\n", removed)
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cache.Close()

	s, err := cache.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "entries:  %d\nnegative: %d\nexpired:  %d\n", s.Entries, s.Negative, s.Expired)
	return nil
}
