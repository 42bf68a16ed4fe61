package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects request and extraction counters per API route.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	entities      atomic.Int64

	routes map[string]*RouteMetrics
}

// RouteMetrics represents metrics for a single route.
type RouteMetrics struct {
	count         atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{routes: make(map[string]*RouteMetrics)}
}

// RecordRequest records a finished request.
func (m *Metrics) RecordRequest(route string, duration time.Duration, entities int) {
	m.requestTotal.Add(1)
	m.entities.Add(int64(entities))
	rm := m.route(route)
	rm.count.Add(1)
	rm.totalDuration.Add(duration.Milliseconds())
}

// RecordFailure records a failed request.
func (m *Metrics) RecordFailure(route string) {
	m.requestFailed.Add(1)
	m.route(route).errorCount.Add(1)
}

func (m *Metrics) route(name string) *RouteMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	rm, ok := m.routes[name]
	if !ok {
		rm = &RouteMetrics{}
		m.routes[name] = rm
	}
	return rm
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.entities.Store(0)

	m.mu.Lock()
	m.routes = make(map[string]*RouteMetrics)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make(map[string]*RouteSnapshot, len(m.routes))
	for name, rm := range m.routes {
		rs := &RouteSnapshot{
			Count:         rm.count.Load(),
			TotalDuration: rm.totalDuration.Load(),
			ErrorCount:    rm.errorCount.Load(),
		}
		if rs.Count > 0 {
			rs.AverageDuration = rs.TotalDuration / rs.Count
		}
		routes[name] = rs
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		Entities:      m.entities.Load(),
		Routes:        routes,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64                     `json:"request_total"`
	RequestFailed int64                     `json:"request_failed"`
	Entities      int64                     `json:"entities"`
	Routes        map[string]*RouteSnapshot `json:"routes"`
}

// RouteSnapshot represents metrics for a specific route.
type RouteSnapshot struct {
	Count           int64 `json:"count"`
	TotalDuration   int64 `json:"total_duration_ms"`
	ErrorCount      int64 `json:"error_count"`
	AverageDuration int64 `json:"average_duration_ms"`
}

// RouteNames returns the recorded routes in order.
func (s *MetricsSnapshot) RouteNames() []string {
	names := make([]string, 0, len(s.Routes))
	for n := range s.Routes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	total := s.RequestTotal + s.RequestFailed
	if total == 0 {
		return 100.0
	}
	return float64(s.RequestTotal) / float64(total) * 100.0
}
