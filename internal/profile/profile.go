package profile

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/recognizer"
)

// Profile is the configuration to start the server and the CLI.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// Recognizer configuration
	Culture string // TIMESENSE_CULTURE (default: en-us)
	Options string // TIMESENSE_OPTIONS, e.g. "ExtendedTypes,EnablePreview"

	// Result cache configuration
	CacheCapacity int           // TIMESENSE_CACHE_CAPACITY (default: 1000)
	CacheTTL      time.Duration // TIMESENSE_CACHE_TTL (default: 30m)
	RedisAddr     string        // TIMESENSE_CACHE_REDIS_ADDR (L2 disabled when empty)
	RedisPassword string        // TIMESENSE_CACHE_REDIS_PASSWORD
	RedisDB       int           // TIMESENSE_CACHE_REDIS_DB (default: 0)
	RedisPrefix   string        // TIMESENSE_CACHE_REDIS_PREFIX (default: timesense:)
	CachePath     string        // TIMESENSE_CACHE_PATH, bbolt file used as L2 when Redis is off

	// Per-client rate limiting of the HTTP API
	RateLimit float64 // TIMESENSE_RATE_LIMIT, requests per second (default: 10)
	RateBurst int     // TIMESENSE_RATE_BURST (default: 20)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsRedisEnabled reports whether the L2 result cache is configured.
func (p *Profile) IsRedisEnabled() bool {
	return p.RedisAddr != ""
}

// IsCacheFileEnabled reports whether the on-disk L2 result cache is used.
func (p *Profile) IsCacheFileEnabled() bool {
	return p.CachePath != "" && !p.IsRedisEnabled()
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from TIMESENSE_* environment variables.
// Values already set on the profile are kept when the variable is absent.
func (p *Profile) FromEnv() {
	getInt := func(key string, def int) int {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			slog.Warn("ignoring malformed integer", "key", key, "value", v)
		}
		return def
	}
	getFloat := func(key string, def float64) float64 {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			slog.Warn("ignoring malformed number", "key", key, "value", v)
		}
		return def
	}
	getDuration := func(key string, def time.Duration) time.Duration {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				return d
			}
			slog.Warn("ignoring malformed duration", "key", key, "value", v)
		}
		return def
	}
	or := func(s, def string) string {
		if s != "" {
			return s
		}
		return def
	}

	p.Mode = getEnvOrDefault("TIMESENSE_MODE", or(p.Mode, "dev"))
	p.Addr = getEnvOrDefault("TIMESENSE_ADDR", p.Addr)
	p.Port = getInt("TIMESENSE_PORT", p.Port)
	p.Culture = getEnvOrDefault("TIMESENSE_CULTURE", or(p.Culture, "en-us"))
	p.Options = getEnvOrDefault("TIMESENSE_OPTIONS", p.Options)

	p.CacheCapacity = getInt("TIMESENSE_CACHE_CAPACITY", p.CacheCapacity)
	p.CacheTTL = getDuration("TIMESENSE_CACHE_TTL", p.CacheTTL)
	p.RedisAddr = getEnvOrDefault("TIMESENSE_CACHE_REDIS_ADDR", p.RedisAddr)
	p.RedisPassword = getEnvOrDefault("TIMESENSE_CACHE_REDIS_PASSWORD", p.RedisPassword)
	p.RedisDB = getInt("TIMESENSE_CACHE_REDIS_DB", p.RedisDB)
	p.RedisPrefix = getEnvOrDefault("TIMESENSE_CACHE_REDIS_PREFIX", or(p.RedisPrefix, "timesense:"))
	p.CachePath = getEnvOrDefault("TIMESENSE_CACHE_PATH", p.CachePath)

	p.RateLimit = getFloat("TIMESENSE_RATE_LIMIT", p.RateLimit)
	p.RateBurst = getInt("TIMESENSE_RATE_BURST", p.RateBurst)
}

// ParsedOptions returns the recognizer switches named by Options.
func (p *Profile) ParsedOptions() (datetime.Options, error) {
	opts, err := datetime.ParseOptions(p.Options)
	if err != nil {
		return datetime.OptionsNone, errors.Wrap(err, "invalid options")
	}
	return opts, nil
}

// Validate normalizes the profile and fills defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port == 0 {
		p.Port = 8081
	}
	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	culture, ok := recognizer.NormalizeCulture(p.Culture)
	if !ok {
		slog.Error("unsupported culture", slog.String("culture", p.Culture))
		return errors.Wrapf(recognizer.ErrUnsupportedCulture, "culture %q", p.Culture)
	}
	p.Culture = culture

	if _, err := p.ParsedOptions(); err != nil {
		return err
	}

	if p.CacheCapacity <= 0 {
		p.CacheCapacity = 1000
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = 30 * time.Minute
	}
	if p.IsRedisEnabled() && p.CachePath != "" {
		slog.Warn("both Redis and a cache file are configured, using Redis", slog.String("cache_path", p.CachePath))
	}
	if p.RateLimit <= 0 {
		p.RateLimit = 10
	}
	if p.RateBurst <= 0 {
		p.RateBurst = 20
	}
	return nil
}
