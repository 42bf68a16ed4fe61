package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/timesense/internal/profile"
	"github.com/hrygo/timesense/server"
)

// version is overwritten at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "timesense",
	Short: "Recognize dates, times, durations and recurrences in text",
	Long: `timesense finds temporal expressions in English or Chinese text and
resolves them into TIMEX values relative to a reference instant.

Examples:
  timesense recognize "let's meet next Tuesday at 3pm"
  timesense recognize --culture zh-cn "明天下午三点"
  timesense extract --options ExtendedTypes "Monday 7pm or 8pm"
  timesense serve --port 8081`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.String("culture", "en-us", "culture of the input text: en-us or zh-cn")
	pf.String("options", "", "comma separated switches: SkipFromToMerge,NoProtoCache,CalendarMode,ExtendedTypes,EnablePreview")
	pf.String("reference", "", "reference instant (RFC 3339 or 2006-01-02 15:04), default now")
	pf.String("timezone", "", "IANA time zone of the reference instant")
	pf.String("format", formatTable, "output format: table|json")
	pf.String("cache-path", "", "bbolt file caching extraction results across runs")
	pf.Bool("debug", false, "enable debug logging")

	for _, name := range []string{"config", "culture", "options", "reference", "timezone", "format", "cache-path", "debug"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("timesense")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(extractCmd, recognizeCmd, serveCmd, cacheCmd, versionCmd)
}

// loadConfig reads the optional config file and sets up logging.
func loadConfig() error {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config %s", file)
		}
	}

	level := slog.LevelWarn
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// buildProfile starts from TIMESENSE_* environment variables and lets the
// config file, then explicit flags, override them.
func buildProfile(cmd *cobra.Command) (*profile.Profile, error) {
	p := &profile.Profile{Version: version}
	p.FromEnv()

	set := func(key string) bool {
		if f := cmd.Flags().Lookup(key); f != nil && f.Changed {
			return true
		}
		return viper.InConfig(key)
	}
	if set("mode") {
		p.Mode = viper.GetString("mode")
	}
	if set("addr") {
		p.Addr = viper.GetString("addr")
	}
	if set("port") {
		p.Port = viper.GetInt("port")
	}
	if set("culture") {
		p.Culture = viper.GetString("culture")
	}
	if set("options") {
		p.Options = viper.GetString("options")
	}
	if set("cache-capacity") {
		p.CacheCapacity = viper.GetInt("cache-capacity")
	}
	if set("cache-ttl") {
		p.CacheTTL = viper.GetDuration("cache-ttl")
	}
	if set("cache-path") {
		p.CachePath = viper.GetString("cache-path")
	}
	if set("redis-addr") {
		p.RedisAddr = viper.GetString("redis-addr")
	}
	if set("rate-limit") {
		p.RateLimit = viper.GetFloat64("rate-limit")
	}
	if set("rate-burst") {
		p.RateBurst = viper.GetInt("rate-burst")
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	p, err := buildProfile(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := server.NewServer(ctx, p)
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}
	if err := s.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start server")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "timesense %s listening on %s:%d (culture %s)\n", version, p.Addr, p.Port, p.Culture)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case <-c:
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	s.Shutdown(shutdownCtx)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
