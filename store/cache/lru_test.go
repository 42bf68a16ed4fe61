package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrygo/timesense/plugin/datetime"
)

func results(texts ...string) []datetime.ExtractResult {
	out := make([]datetime.ExtractResult, 0, len(texts))
	for _, s := range texts {
		out = append(out, datetime.ExtractResult{Length: len(s), Text: s, Kind: datetime.KindDate})
	}
	return out
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	c.Set("a", results("today"), 0)
	c.Set("b", results("tomorrow"), 0)

	// Touch a so that b becomes the oldest.
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Set("c", results("yesterday"), 0)
	assert.Equal(t, 2, c.Size())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUCache_Expiry(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	c := NewLRUCache(10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("short", results("noon"), time.Second)
	c.Set("long", results("tonight"), 0)

	now = now.Add(2 * time.Second)
	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, c.CleanupExpired())
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_UpdateAndClear(t *testing.T) {
	c := NewLRUCache(0, 0)
	c.Set("k", results("today"), 0)
	c.Set("k", results("tomorrow"), 0)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "tomorrow", v[0].Text)
	assert.Equal(t, 1, c.Size())

	c.Set("x", nil, 0)
	assert.Equal(t, 2, c.Size())
	c.Clear()
	assert.Equal(t, 0, c.Size())
}
