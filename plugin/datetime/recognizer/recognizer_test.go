package recognizer

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/store/cache"
)

var ref = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeCulture(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"en-us", "en-us", true},
		{"EN_US", "en-us", true},
		{"en", "en-us", true},
		{"zh", "zh-cn", true},
		{" zh-CN ", "zh-cn", true},
		{"fr-fr", "fr-fr", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeCulture(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []string{"en-us", "zh-cn"}, Cultures())
}

func TestNew_UnsupportedCulture(t *testing.T) {
	_, err := New("klingon", WithLogger(quietLogger()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCulture))
}

func TestRecognize(t *testing.T) {
	r, err := New("en", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, "en-us", r.Culture())

	prs := r.Recognize(context.Background(), "call me tomorrow, then 2 hours of review", ref)
	require.Len(t, prs, 2)
	assert.Equal(t, datetime.KindDate, prs[0].Kind)
	assert.Equal(t, "tomorrow", prs[0].Text)
	assert.Equal(t, "2024-06-11", prs[0].TimexStr)
	assert.Equal(t, datetime.KindDuration, prs[1].Kind)
	assert.Equal(t, "PT2H", prs[1].TimexStr)

	assert.Nil(t, r.Recognize(context.Background(), "no dates here", ref))
}

func TestRecognize_Chinese(t *testing.T) {
	r, err := New("zh-cn", WithLogger(quietLogger()))
	require.NoError(t, err)

	prs := r.Recognize(context.Background(), "我们明天见", ref)
	require.Len(t, prs, 1)
	assert.Equal(t, "明天", prs[0].Text)
	assert.Equal(t, "2024-06-11", prs[0].TimexStr)
}

func TestExtract_Cached(t *testing.T) {
	c := cache.New(cache.DefaultConfig(), nil)
	defer c.Close()
	ctx := context.Background()

	r, err := New("en-us", WithCache(c), WithOptions(datetime.ExtendedTypes), WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, datetime.ExtendedTypes, r.Options())

	uncached, err := New("en-us", WithOptions(datetime.ExtendedTypes), WithLogger(quietLogger()))
	require.NoError(t, err)

	text := "Monday 7pm or 8pm"
	first := r.Extract(ctx, text, ref)
	second := r.Extract(ctx, text, ref)
	assert.Equal(t, first, second)
	assert.Equal(t, uncached.Extract(ctx, text, ref), first)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestExtract_CachedEmpty(t *testing.T) {
	c := cache.New(cache.DefaultConfig(), nil)
	defer c.Close()
	ctx := context.Background()

	r, err := New("en-us", WithCache(c), WithLogger(quietLogger()))
	require.NoError(t, err)
	uncached, err := New("en-us", WithLogger(quietLogger()))
	require.NoError(t, err)

	text := "nothing temporal here"
	want := uncached.Extract(ctx, text, ref)
	assert.Nil(t, want)
	assert.Equal(t, want, r.Extract(ctx, text, ref))
	assert.Equal(t, want, r.Extract(ctx, text, ref))
}

func TestExtract_NoProtoCache(t *testing.T) {
	c := cache.New(cache.DefaultConfig(), nil)
	defer c.Close()

	r, err := New("en-us", WithCache(c), WithOptions(datetime.NoProtoCache), WithLogger(quietLogger()))
	require.NoError(t, err)

	r.Extract(context.Background(), "tomorrow", ref)
	r.Extract(context.Background(), "tomorrow", ref)
	assert.Equal(t, 0, c.Stats().Size)
}
