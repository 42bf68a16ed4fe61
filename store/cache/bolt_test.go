package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
)

func openTestBolt(t *testing.T, path string) *BoltCache {
	t.Helper()
	b, err := OpenBoltCache(path, time.Minute)
	require.NoError(t, err)
	return b
}

func TestBoltCache_GetSet(t *testing.T) {
	ctx := context.Background()
	b := openTestBolt(t, filepath.Join(t.TempDir(), "nested", "cache.db"))
	defer b.Close()

	_, ok := b.Get(ctx, "k")
	assert.False(t, ok)

	b.Set(ctx, "k", []byte(`[{"start":0}]`), 0)
	v, ok := b.Get(ctx, "k")
	require.True(t, ok)
	assert.JSONEq(t, `[{"start":0}]`, string(v))
	assert.Equal(t, 1, b.Len())

	b.Clear(ctx)
	_, ok = b.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBoltCache_Expiry(t *testing.T) {
	ctx := context.Background()
	b := openTestBolt(t, filepath.Join(t.TempDir(), "cache.db"))
	defer b.Close()

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.Set(ctx, "short", []byte(`[]`), time.Second)
	b.Set(ctx, "long", []byte(`[]`), time.Hour)

	now = now.Add(time.Minute)
	_, ok := b.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = b.Get(ctx, "long")
	assert.True(t, ok)

	removed, err := b.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, b.Len())
}

func TestBoltCache_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	results := []datetime.ExtractResult{{Start: 0, Length: 8, Text: "tomorrow", Kind: datetime.KindDate}}

	writer := New(DefaultConfig(), openTestBolt(t, path))
	got := writer.GetOrCompute(ctx, testKey("tomorrow"), func() []datetime.ExtractResult {
		return results
	})
	assert.Equal(t, results, got)
	require.NoError(t, writer.Close())

	reader := New(DefaultConfig(), openTestBolt(t, path))
	defer reader.Close()
	got = reader.GetOrCompute(ctx, testKey("tomorrow"), func() []datetime.ExtractResult {
		t.Fatal("result should come from the bolt tier")
		return nil
	})
	assert.Equal(t, results, got)
	assert.Equal(t, int64(1), reader.Stats().L2Hits)
}
