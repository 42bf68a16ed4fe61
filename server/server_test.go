package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/internal/profile"
	"github.com/hrygo/timesense/store/cache"
)

func TestNewServer(t *testing.T) {
	p := &profile.Profile{Culture: "en-us", Options: "ExtendedTypes"}
	require.NoError(t, p.Validate())

	s, err := NewServer(context.Background(), p)
	require.NoError(t, err)
	defer s.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"text":"Monday 7pm or 8pm"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"type":"datetimealt"`)
}

func TestOpenL2(t *testing.T) {
	ctx := context.Background()

	l2, err := OpenL2(ctx, &profile.Profile{})
	require.NoError(t, err)
	assert.Nil(t, l2)

	p := &profile.Profile{CachePath: filepath.Join(t.TempDir(), "cache.db")}
	require.NoError(t, p.Validate())
	l2, err = OpenL2(ctx, p)
	require.NoError(t, err)
	require.IsType(t, &cache.BoltCache{}, l2)
	assert.NoError(t, l2.Close())
}
