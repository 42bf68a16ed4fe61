package v1

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/timesense/internal/profile"
	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/recognizer"
	"github.com/hrygo/timesense/server/internal/observability"
	ratelimit "github.com/hrygo/timesense/server/middleware"
	"github.com/hrygo/timesense/store/cache"
)

type recognizerKey struct {
	culture string
	opts    datetime.Options
}

// APIV1Service serves the recognizer over JSON.
type APIV1Service struct {
	Profile *profile.Profile
	Cache   *cache.ResultCache
	Metrics *observability.Metrics
	Logger  *slog.Logger

	now func() time.Time

	mu          sync.Mutex
	recognizers map[recognizerKey]*recognizer.Recognizer
}

// NewAPIV1Service creates the API service. resultCache may be nil.
func NewAPIV1Service(profile *profile.Profile, resultCache *cache.ResultCache) *APIV1Service {
	return &APIV1Service{
		Profile:     profile,
		Cache:       resultCache,
		Metrics:     observability.NewMetrics(),
		Logger:      slog.Default(),
		now:         time.Now,
		recognizers: make(map[recognizerKey]*recognizer.Recognizer),
	}
}

// RegisterRoutes mounts the API on e. Requests pass the per-IP limiter
// when rl is not nil.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo, rl *ratelimit.RateLimiter) {
	g := e.Group("/api/v1")
	g.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	if rl != nil {
		g.Use(ratelimit.RateLimit(rl))
	}

	g.POST("/extract", s.Extract)
	g.POST("/recognize", s.Recognize)
	g.GET("/cultures", s.ListCultures)
	g.GET("/system/metrics", s.GetMetricsOverview)
}

// recognizerFor returns the shared recognizer of a culture and option set,
// building it on first use.
func (s *APIV1Service) recognizerFor(culture string, opts datetime.Options) (*recognizer.Recognizer, error) {
	key := recognizerKey{culture: culture, opts: opts}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.recognizers[key]; ok {
		return r, nil
	}
	ropts := []recognizer.Option{recognizer.WithOptions(opts), recognizer.WithLogger(s.Logger)}
	if s.Cache != nil {
		ropts = append(ropts, recognizer.WithCache(s.Cache))
	}
	r, err := recognizer.New(culture, ropts...)
	if err != nil {
		return nil, err
	}
	s.recognizers[key] = r
	return r, nil
}
