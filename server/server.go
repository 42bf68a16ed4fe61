// Package server hosts the recognizer HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/timesense/internal/profile"
	ratelimit "github.com/hrygo/timesense/server/middleware"
	apiv1 "github.com/hrygo/timesense/server/router/api/v1"
	"github.com/hrygo/timesense/store/cache"
)

// limiterIdle is how long a client may stay silent before its bucket is
// dropped.
const limiterIdle = 10 * time.Minute

type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	cache      *cache.ResultCache
	limiter    *ratelimit.RateLimiter
	cancel     context.CancelFunc
}

// NewServer wires the result cache, the limiter and the API routes.
func NewServer(ctx context.Context, profile *profile.Profile) (*Server, error) {
	l2, err := OpenL2(ctx, profile)
	if err != nil {
		return nil, err
	}
	resultCache := cache.New(cache.Config{
		Capacity: profile.CacheCapacity,
		TTL:      profile.CacheTTL,
	}, l2)

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestID())

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	limiter := ratelimit.NewRateLimiter(profile.RateLimit, profile.RateBurst)
	apiv1.NewAPIV1Service(profile, resultCache).RegisterRoutes(echoServer, limiter)

	return &Server{
		Profile:    profile,
		echoServer: echoServer,
		cache:      resultCache,
		limiter:    limiter,
	}, nil
}

// OpenL2 opens the second result cache tier the profile asks for: Redis,
// else a bbolt file, else none.
func OpenL2(ctx context.Context, profile *profile.Profile) (cache.L2, error) {
	switch {
	case profile.IsRedisEnabled():
		redisCache, err := cache.NewRedisCache(ctx, &cache.RedisConfig{
			Addr:         profile.RedisAddr,
			Password:     profile.RedisPassword,
			DB:           profile.RedisDB,
			KeyPrefix:    profile.RedisPrefix,
			DefaultTTL:   profile.CacheTTL,
			PoolSize:     10,
			MinIdleConns: 2,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis cache")
		}
		return redisCache, nil
	case profile.IsCacheFileEnabled():
		boltCache, err := cache.OpenBoltCache(profile.CachePath, profile.CacheTTL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open cache file")
		}
		slog.Info("cache file opened", slog.String("path", boltCache.Path()))
		return boltCache, nil
	}
	return nil, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Start listens on the profile address and serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	go s.sweepLimiter(ctx)

	go func() {
		s.echoServer.Listener = listener
		if err := s.echoServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	slog.Info("timesense server started", "addr", listener.Addr().String(), "culture", s.Profile.Culture)
	return nil
}

// Shutdown stops the HTTP server and releases the cache.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.cache.Close(); err != nil {
		slog.Error("failed to close cache", slog.String("error", err.Error()))
	}
	slog.Info("server stopped properly")
}

func (s *Server) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Cleanup(limiterIdle); n > 0 {
				slog.Debug("rate limiter keys dropped", "count", n)
			}
		}
	}
}
