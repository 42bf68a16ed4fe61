package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/timesense/server/internal/observability"
	"github.com/hrygo/timesense/store/cache"
)

// MetricsOverviewResponse represents the overview response of system metrics.
type MetricsOverviewResponse struct {
	TotalRequests int64                                   `json:"total_requests"`
	ErrorCount    int64                                   `json:"error_count"`
	SuccessRate   float64                                 `json:"success_rate"`
	Entities      int64                                   `json:"entities"`
	Routes        map[string]*observability.RouteSnapshot `json:"routes"`
	Cache         *cache.Stats                            `json:"cache,omitempty"`
}

// GetMetricsOverview returns request and cache counters.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snap := s.Metrics.Snapshot()
	resp := MetricsOverviewResponse{
		TotalRequests: snap.RequestTotal,
		ErrorCount:    snap.RequestFailed,
		SuccessRate:   snap.SuccessRate(),
		Entities:      snap.Entities,
		Routes:        snap.Routes,
	}
	if s.Cache != nil {
		stats := s.Cache.Stats()
		resp.Cache = &stats
	}
	return c.JSON(http.StatusOK, resp)
}
