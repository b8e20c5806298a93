package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/config"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/handler"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/ingest"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/metrics"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/middleware"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/service"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/service/youtube"
	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/validation"
	"github.com/ad-tracker/youtube-trend-analyzer-go/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run starts the server and blocks until it stops. It returns the process
// exit code so deferred cleanup runs before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	cache, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		logger.Log.Error("Failed to initialize static cache", zap.Error(err))
		return 1
	}
	defer closeCache()

	staticLoader := ingest.NewStaticLoader(cache, ingest.WithMetrics(m))

	// Live source is optional; without an API key live requests fail with 502.
	var live service.LiveSource
	youtubeClient, err := youtube.NewClient(cfg.YouTube, m)
	switch {
	case errors.Is(err, youtube.ErrNoAPIKey):
		logger.Log.Info("YouTube API key not configured (APP_YOUTUBE_APIKEY), live source will not be available")
	case err != nil:
		logger.Log.Warn("Failed to initialize YouTube API client, live source will not be available", zap.Error(err))
	default:
		live = youtubeClient
		logger.Log.Info("YouTube API client initialized",
			zap.String("regionCode", cfg.YouTube.RegionCode),
			zap.String("chart", cfg.YouTube.Chart),
		)
	}

	livePolicy := ingest.KeepIncomplete
	if cfg.Source.Live.DropIncomplete {
		livePolicy = ingest.DropIncomplete
	}

	dashboardService := service.NewDashboardService(
		service.DashboardConfig{
			CSVPath:       cfg.Source.CSVPath,
			DefaultSource: models.Source(cfg.Source.Default),
			LivePolicy:    livePolicy,
		},
		staticLoader,
		live,
		cache,
		validation.New(validation.DefaultMaxCategories),
		m,
	)

	if len(cfg.Server.APIKeys) == 0 {
		logger.Log.Warn("No API keys configured - cache invalidation will reject all requests",
			zap.String("envVar", "APP_SERVER_APIKEYS"),
		)
	}

	router := setupRouter(cfg, dashboardService, m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("csvPath", cfg.Source.CSVPath),
			zap.String("defaultSource", cfg.Source.Default),
			zap.String("cacheBackend", cfg.Cache.Backend),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Server error", zap.Error(err))
			return 1
		}
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			return 1
		}

		logger.Log.Info("Server stopped gracefully")
	}

	return 0
}

// newCache builds the static memo backend named by cfg.Backend. The returned
// func releases its connections.
func newCache(cfg config.CacheConfig) (ingest.Cache, func(), error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		rc, err := ingest.NewRedisCacheFromURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Log.Info("Static cache backed by redis")
		return rc, func() { _ = rc.Close() }, nil
	default:
		return ingest.NewMemoryCache(), func() {}, nil
	}
}

// dashboardBackend is what the router needs from the service layer.
type dashboardBackend interface {
	handler.DashboardRenderer
	handler.ReadinessChecker
}

func setupRouter(cfg *config.Config, svc dashboardBackend, m *metrics.Metrics, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(m),
	)

	healthHandler := handler.NewHealthHandler(svc)
	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metricsHandler))
	}

	dashboardHandler := handler.NewDashboardHandler(svc)
	auth := middleware.NewAPIKeyAuth(cfg.Server.APIKeys, logger.Named("auth"))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", dashboardHandler.GetDashboard)
		v1.GET("/options", dashboardHandler.GetOptions)
		v1.POST("/cache/invalidate", auth.Handler(), dashboardHandler.InvalidateCache)
	}

	return router
}
