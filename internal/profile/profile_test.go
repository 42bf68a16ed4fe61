package profile

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/recognizer"
)

var timesenseEnvVars = []string{
	"TIMESENSE_MODE", "TIMESENSE_ADDR", "TIMESENSE_PORT", "TIMESENSE_CULTURE", "TIMESENSE_OPTIONS",
	"TIMESENSE_CACHE_CAPACITY", "TIMESENSE_CACHE_TTL", "TIMESENSE_CACHE_REDIS_ADDR",
	"TIMESENSE_CACHE_REDIS_PASSWORD", "TIMESENSE_CACHE_REDIS_DB", "TIMESENSE_CACHE_REDIS_PREFIX",
	"TIMESENSE_CACHE_PATH", "TIMESENSE_RATE_LIMIT", "TIMESENSE_RATE_BURST",
}

func clearEnv(t *testing.T) {
	for _, k := range timesenseEnvVars {
		t.Setenv(k, "")
	}
}

func TestProfileDefaults(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
	assert.True(t, p.IsDev())
	assert.Equal(t, 8081, p.Port)
	assert.Equal(t, "en-us", p.Culture)
	assert.Equal(t, 1000, p.CacheCapacity)
	assert.Equal(t, 30*time.Minute, p.CacheTTL)
	assert.Equal(t, "timesense:", p.RedisPrefix)
	assert.False(t, p.IsRedisEnabled())
	assert.Equal(t, 10.0, p.RateLimit)
	assert.Equal(t, 20, p.RateBurst)
}

func TestProfileFromEnv(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) any
		expected any
	}{
		{"culture", "TIMESENSE_CULTURE", "zh", func(p *Profile) any { return p.Culture }, "zh-cn"},
		{"port", "TIMESENSE_PORT", "9000", func(p *Profile) any { return p.Port }, 9000},
		{"cache ttl", "TIMESENSE_CACHE_TTL", "5m", func(p *Profile) any { return p.CacheTTL }, 5 * time.Minute},
		{"redis addr", "TIMESENSE_CACHE_REDIS_ADDR", "redis:6379", func(p *Profile) any { return p.IsRedisEnabled() }, true},
		{"cache file", "TIMESENSE_CACHE_PATH", "/tmp/ts.db", func(p *Profile) any { return p.IsCacheFileEnabled() }, true},
		{"rate limit", "TIMESENSE_RATE_LIMIT", "2.5", func(p *Profile) any { return p.RateLimit }, 2.5},
		{"malformed port falls back", "TIMESENSE_PORT", "http", func(p *Profile) any { return p.Port }, 8081},
		{"mode", "TIMESENSE_MODE", "prod", func(p *Profile) any { return p.IsDev() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envValue)
			p := &Profile{}
			p.FromEnv()
			require.NoError(t, p.Validate())
			assert.Equal(t, tt.expected, tt.field(p))
		})
	}
}

func TestProfileOptions(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESENSE_OPTIONS", "ExtendedTypes,EnablePreview")

	p := &Profile{}
	p.FromEnv()
	require.NoError(t, p.Validate())
	opts, err := p.ParsedOptions()
	require.NoError(t, err)
	assert.Equal(t, datetime.ExtendedTypes|datetime.EnablePreview, opts)
}

func TestProfileValidate_Errors(t *testing.T) {
	p := &Profile{Culture: "xx-yy"}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, recognizer.ErrUnsupportedCulture))

	p = &Profile{Culture: "en-us", Options: "Bogus"}
	assert.Error(t, p.Validate())

	p = &Profile{Culture: "en-us", Port: 70000}
	assert.Error(t, p.Validate())
}

func TestProfileCacheFileYieldsToRedis(t *testing.T) {
	p := &Profile{CachePath: "/tmp/ts.db"}
	assert.True(t, p.IsCacheFileEnabled())

	p.RedisAddr = "redis:6379"
	require.NoError(t, p.Validate())
	assert.False(t, p.IsCacheFileEnabled())
	assert.True(t, p.IsRedisEnabled())
}
