package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/timesense/store/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the result cache file",
	Long: `Commands for the bbolt file named by --cache-path (or TIMESENSE_CACHE_PATH).

extract and recognize store their results there when the path is set, so
repeated runs over the same text and reference skip recognition.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show the number of cached entries",
	Example: `  timesense cache stats --cache-path ~/.cache/timesense.db`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := openCacheFile()
		if err != nil {
			return err
		}
		defer b.Close()

		tw := newTable(cmd.OutOrStdout(), []string{"PATH", "ENTRIES"})
		tw.Append([]string{b.Path(), strconv.Itoa(b.Len())})
		tw.Render()
		return nil
	},
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := openCacheFile()
		if err != nil {
			return err
		}
		defer b.Close()

		removed, err := b.Sweep()
		if err != nil {
			return errors.Wrap(err, "failed to sweep cache")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries, %d left\n", removed, b.Len())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached entry",
	Long: `Delete every cached entry.

bbolt does not shrink the file after clearing; free pages are reused by later
writes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := openCacheFile()
		if err != nil {
			return err
		}
		defer b.Close()

		b.Clear(context.Background())
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", b.Path())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheSweepCmd, cacheClearCmd)
}

func openCacheFile() (*cache.BoltCache, error) {
	path := viper.GetString("cache-path")
	if path == "" {
		return nil, errors.New("no cache file: set --cache-path or TIMESENSE_CACHE_PATH")
	}
	return cache.OpenBoltCache(path, 30*time.Minute)
}
