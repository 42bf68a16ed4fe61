package v1

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/internal/profile"
	"github.com/hrygo/timesense/server/middleware"
	"github.com/hrygo/timesense/store/cache"
)

func newTestServer(t *testing.T, rl *middleware.RateLimiter) (*echo.Echo, *APIV1Service) {
	t.Helper()
	p := &profile.Profile{Culture: "en-us"}
	require.NoError(t, p.Validate())

	c := cache.New(cache.DefaultConfig(), nil)
	t.Cleanup(func() { _ = c.Close() })

	s := NewAPIV1Service(p, c)
	s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

	e := echo.New()
	s.RegisterRoutes(e, rl)
	return e, s
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExtract(t *testing.T) {
	e, _ := newTestServer(t, nil)

	rec := post(e, "/api/v1/extract", `{"text":"see you tomorrow"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var resp struct {
		Culture string `json:"culture"`
		Results []struct {
			Start  int    `json:"start"`
			Length int    `json:"length"`
			Text   string `json:"text"`
			Type   string `json:"type"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en-us", resp.Culture)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "tomorrow", resp.Results[0].Text)
	assert.Equal(t, 8, resp.Results[0].Start)
	assert.Equal(t, "date", resp.Results[0].Type)
}

func TestExtract_Empty(t *testing.T) {
	e, _ := newTestServer(t, nil)

	rec := post(e, "/api/v1/extract", `{"text":"nothing to see"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results":[]`)
}

func TestRecognize(t *testing.T) {
	e, s := newTestServer(t, nil)

	rec := post(e, "/api/v1/recognize", `{"text":"明天下午3点开会","culture":"zh"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "zh-cn", resp.Culture)
	require.Len(t, resp.Results, 1)

	got := resp.Results[0]
	assert.Equal(t, "明天下午3点", got.Text)
	assert.Equal(t, "datetimeV2.datetime", got.TypeName)
	assert.Equal(t, "2024-06-11T15", got.Timex)
	require.Len(t, got.Resolution, 1)
	assert.Equal(t, "2024-06-11 15:00:00", got.Resolution[0]["value"])

	snap := s.Metrics.Snapshot()
	assert.Equal(t, int64(1), snap.RequestTotal)
	assert.Equal(t, int64(1), snap.Entities)
}

func TestRecognize_Reference(t *testing.T) {
	e, _ := newTestServer(t, nil)

	rec := post(e, "/api/v1/recognize", `{"text":"3 days ago","reference":"2024-01-10"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "2024-01-07", resp.Results[0].Timex)
}

func TestRecognize_Recurrence(t *testing.T) {
	e, _ := newTestServer(t, nil)

	rec := post(e, "/api/v1/recognize", `{"text":"standup every Monday","occurrences":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)

	got := resp.Results[0]
	assert.Equal(t, "XXXX-WXX-1", got.Timex)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", got.RRule)
	require.Len(t, got.Next, 2)
	assert.True(t, got.Next[0].Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.Next[1].Equal(time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)))
}

func TestRequestErrors(t *testing.T) {
	e, s := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed body", `{"text":`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unsupported culture", `{"text":"x","culture":"fr-fr"}`, http.StatusBadRequest, "UNSUPPORTED_CULTURE"},
		{"bad options", `{"text":"x","options":"Warp"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad reference", `{"text":"x","reference":"someday"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad timezone", `{"text":"x","timezone":"Mars/Base"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"too many occurrences", `{"text":"x","occurrences":500}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(e, "/api/v1/extract", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
	assert.Equal(t, int64(len(tests)), s.Metrics.Snapshot().RequestFailed)
}

func TestListCultures(t *testing.T) {
	e, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cultures", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CulturesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"en-us", "zh-cn"}, resp.Cultures)
	assert.Equal(t, "en-us", resp.Default)
}

func TestRateLimited(t *testing.T) {
	e, _ := newTestServer(t, middleware.NewRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, post(e, "/api/v1/extract", `{"text":"today"}`).Code)
	rec := post(e, "/api/v1/extract", `{"text":"today"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestMetricsOverview(t *testing.T) {
	e, _ := newTestServer(t, nil)
	post(e, "/api/v1/extract", `{"text":"today"}`)
	post(e, "/api/v1/extract", `{"text":"today"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MetricsOverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.TotalRequests)
	require.NotNil(t, resp.Cache)
	assert.Equal(t, int64(1), resp.Cache.Hits)
	assert.Equal(t, int64(1), resp.Cache.Misses)
}
