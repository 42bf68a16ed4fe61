package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := NewRequestContext(logger, "extract", "en-us")
	assert.Len(t, rc.RequestID, 36)

	rc.Info("request finished", slog.Int(LogFieldEntities, 2))
	out := buf.String()
	assert.Contains(t, out, "request_id="+rc.RequestID)
	assert.Contains(t, out, "route=extract")
	assert.Contains(t, out, "culture=en-us")
	assert.Contains(t, out, "entities=2")

	buf.Reset()
	rc.Error("request failed", errors.New("boom"))
	assert.Contains(t, buf.String(), "error=boom")

	ctx := WithRequestContext(context.Background(), rc)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, rc, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)

	fixed := NewRequestContextWithID(nil, "req-1", "recognize", "zh-cn")
	assert.Equal(t, "req-1", fixed.RequestID)
	assert.NotNil(t, fixed.Logger)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("extract", 10*time.Millisecond, 2)
	m.RecordRequest("extract", 30*time.Millisecond, 1)
	m.RecordRequest("recognize", 5*time.Millisecond, 0)
	m.RecordFailure("recognize")

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.RequestTotal)
	assert.Equal(t, int64(1), s.RequestFailed)
	assert.Equal(t, int64(3), s.Entities)
	assert.Equal(t, []string{"extract", "recognize"}, s.RouteNames())
	assert.Equal(t, int64(20), s.Routes["extract"].AverageDuration)
	assert.Equal(t, int64(1), s.Routes["recognize"].ErrorCount)
	assert.InDelta(t, 75.0, s.SuccessRate(), 0.001)

	m.Reset()
	s = m.Snapshot()
	assert.Zero(t, s.RequestTotal)
	assert.Empty(t, s.Routes)
	assert.Equal(t, 100.0, s.SuccessRate())
}
