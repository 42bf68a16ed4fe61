package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/timesense/plugin/datetime/recognizer"
	"github.com/hrygo/timesense/server"
	"github.com/hrygo/timesense/server/timezone"
	"github.com/hrygo/timesense/store/cache"
)

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "List the temporal spans found in text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, ref, closeFn, err := newRecognizer(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		results := rec.Extract(cmd.Context(), strings.Join(args, " "), ref)
		return renderExtract(cmd.OutOrStdout(), results, viper.GetString("format"))
	},
}

var recognizeCmd = &cobra.Command{
	Use:   "recognize <text>",
	Short: "Extract and resolve temporal expressions in text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, ref, closeFn, err := newRecognizer(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		n, err := cmd.Flags().GetInt("occurrences")
		if err != nil {
			return err
		}
		results := rec.Recognize(cmd.Context(), strings.Join(args, " "), ref)
		return renderRecognize(cmd.OutOrStdout(), results, ref, n, viper.GetString("format"))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recognizer over HTTP",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the timesense version and build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := map[string]string{
			"version":    version,
			"go_version": runtime.Version(),
			"os":         runtime.GOOS + "/" + runtime.GOARCH,
			"cultures":   strings.Join(recognizer.Cultures(), ","),
		}
		if viper.GetString("format") == formatJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "timesense %s\n", info["version"])
		fmt.Fprintf(cmd.OutOrStdout(), "go        %s\n", info["go_version"])
		fmt.Fprintf(cmd.OutOrStdout(), "os        %s\n", info["os"])
		fmt.Fprintf(cmd.OutOrStdout(), "cultures  %s\n", info["cultures"])
		return nil
	},
}

func init() {
	recognizeCmd.Flags().Int("occurrences", 0, "list this many upcoming occurrences of each recurrence (json output)")

	f := serveCmd.Flags()
	f.String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	f.String("addr", "", "address of server")
	f.Int("port", 8081, "port of server")
	f.Int("cache-capacity", 1000, "result cache entries")
	f.Duration("cache-ttl", 30*time.Minute, "result cache entry lifetime")
	f.String("redis-addr", "", "Redis address of the shared result cache tier")
	f.Float64("rate-limit", 10, "requests per second allowed per client")
	f.Int("rate-burst", 20, "request burst allowed per client")
	for _, name := range []string{"mode", "addr", "port", "cache-capacity", "cache-ttl", "redis-addr", "rate-limit", "rate-burst"} {
		if err := viper.BindPFlag(name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// newRecognizer builds a recognizer and reference instant from the flags.
// A result cache is attached only when a cache file or Redis is configured;
// the returned func releases it.
func newRecognizer(cmd *cobra.Command) (*recognizer.Recognizer, time.Time, func(), error) {
	noop := func() {}
	p, err := buildProfile(cmd)
	if err != nil {
		return nil, time.Time{}, noop, err
	}
	opts, err := p.ParsedOptions()
	if err != nil {
		return nil, time.Time{}, noop, err
	}
	ref, err := timezone.ParseReference(viper.GetString("reference"), viper.GetString("timezone"), time.Now)
	if err != nil {
		return nil, time.Time{}, noop, err
	}

	recOpts := []recognizer.Option{recognizer.WithOptions(opts)}
	closeFn := noop
	if p.IsRedisEnabled() || p.IsCacheFileEnabled() {
		l2, err := server.OpenL2(cmd.Context(), p)
		if err != nil {
			return nil, time.Time{}, noop, err
		}
		c := cache.New(cache.Config{Capacity: p.CacheCapacity, TTL: p.CacheTTL}, l2)
		recOpts = append(recOpts, recognizer.WithCache(c))
		closeFn = func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close cache", "error", err)
			}
		}
	}

	rec, err := recognizer.New(p.Culture, recOpts...)
	if err != nil {
		closeFn()
		return nil, time.Time{}, noop, err
	}
	return rec, ref, closeFn, nil
}
