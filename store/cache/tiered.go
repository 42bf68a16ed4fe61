// Package cache memoizes extraction results.
//
// The result cache is two tiered:
//   - L1: in-process LRU with TTL (always on)
//   - L2: Redis for multi-instance deployments, or a local bbolt file
//     that survives restarts (optional)
//
// Concurrent misses on the same key are collapsed into one computation.
// Every result handed out is a deep copy, so callers cannot observe the
// cache except through latency.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/timesense/plugin/datetime"
)

// Key identifies one extraction. Two keys are equal only when every input
// of the extraction is equal.
type Key struct {
	Options datetime.Options
	Culture string
	Text    string
	Ref     time.Time
}

// String renders the key. The reference keeps its location name since
// calendar arithmetic happens in that location.
func (k Key) String() string {
	return fmt.Sprintf("%d|%s|%s@%s|%s",
		uint32(k.Options), k.Culture, k.Ref.Format(time.RFC3339Nano), k.Ref.Location(), k.Text)
}

// Config configures the result cache.
type Config struct {
	Capacity        int           // L1 entries (default: 1000)
	TTL             time.Duration // entry lifetime in both tiers (default: 30 minutes)
	CleanupInterval time.Duration // L1 expiry sweep (default: 1 minute)
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:        1000,
		TTL:             30 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	L2Hits int64 `json:"l2_hits"`
	Misses int64 `json:"misses"`
	L2     bool  `json:"l2_enabled"`
}

// ResultCache implements get-or-compute over extraction results.
type ResultCache struct {
	l1    *LRUCache
	l2    L2
	ttl   time.Duration
	group singleflight.Group

	hits, l2Hits, misses atomic.Int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a result cache. l2 may be nil.
func New(cfg Config, l2 L2) *ResultCache {
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &ResultCache{
		l1:     NewLRUCache(cfg.Capacity, cfg.TTL),
		l2:     l2,
		ttl:    cfg.TTL,
		cancel: cancel,
	}

	c.wg.Add(1)
	go c.cleanupLoop(ctx, cfg.CleanupInterval)

	return c
}

// GetOrCompute returns the cached results for key, calling compute on a
// miss. An empty result list is stored and returned as nil.
func (c *ResultCache) GetOrCompute(ctx context.Context, key Key, compute func() []datetime.ExtractResult) []datetime.ExtractResult {
	k := key.String()
	if v, ok := c.l1.Get(k); ok {
		c.hits.Add(1)
		return datetime.CloneResults(v)
	}

	v, _, _ := c.group.Do(k, func() (any, error) {
		if v, ok := c.l1.Get(k); ok {
			c.hits.Add(1)
			return v, nil
		}
		if v, ok := c.fromL2(ctx, k); ok {
			c.l2Hits.Add(1)
			c.l1.Set(k, v, c.ttl)
			return v, nil
		}

		c.misses.Add(1)
		v := normalize(compute())
		c.l1.Set(k, v, c.ttl)
		c.toL2(ctx, k, v)
		return v, nil
	})
	return datetime.CloneResults(v.([]datetime.ExtractResult))
}

func (c *ResultCache) fromL2(ctx context.Context, k string) ([]datetime.ExtractResult, bool) {
	if c.l2 == nil {
		return nil, false
	}
	b, ok := c.l2.Get(ctx, k)
	if !ok {
		return nil, false
	}
	v, err := datetime.DecodeResults(b)
	if err != nil {
		slog.Warn("dropping undecodable cache entry", "error", err)
		return nil, false
	}
	return normalize(v), true
}

func (c *ResultCache) toL2(ctx context.Context, k string, v []datetime.ExtractResult) {
	if c.l2 == nil {
		return
	}
	b, err := datetime.EncodeResults(v)
	if err != nil {
		slog.Warn("failed to encode cache entry", "error", err)
		return
	}
	c.l2.Set(ctx, k, b, c.ttl)
}

func normalize(v []datetime.ExtractResult) []datetime.ExtractResult {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Stats returns the current counters.
func (c *ResultCache) Stats() Stats {
	return Stats{
		Size:   c.l1.Size(),
		Hits:   c.hits.Load(),
		L2Hits: c.l2Hits.Load(),
		Misses: c.misses.Load(),
		L2:     c.l2 != nil,
	}
}

// Clear empties both tiers.
func (c *ResultCache) Clear(ctx context.Context) {
	c.l1.Clear()
	if c.l2 != nil {
		c.l2.Clear(ctx)
	}
}

// Close stops the expiry sweep and closes the L2 tier.
func (c *ResultCache) Close() error {
	c.cancel()
	c.wg.Wait()
	if c.l2 != nil {
		return c.l2.Close()
	}
	return nil
}

func (c *ResultCache) cleanupLoop(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.l1.CleanupExpired(); n > 0 {
				slog.Debug("expired cache entries removed", "count", n)
			}
		}
	}
}
