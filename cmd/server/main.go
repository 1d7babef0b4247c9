package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-shortlink/internal/analytics"
	"go-shortlink/internal/cache"
	"go-shortlink/internal/config"
	"go-shortlink/internal/database"
	httpdelivery "go-shortlink/internal/delivery/http"
	"go-shortlink/internal/enrichment"
	"go-shortlink/internal/eventbus"
	"go-shortlink/internal/repository/sqlite"
	"go-shortlink/internal/shortener"
	"go-shortlink/internal/tracker"

	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func main() {
	cfg := config.MustLoad()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DatabasePath), 0755); err != nil {
		logger.Fatal("failed to create data directory", zap.Error(err))
	}

	db, err := database.OpenDB(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database initialized", zap.String("path", cfg.Storage.DatabasePath))

	// Optional Redis cache for the redirect hot path
	var rdb *redis.Client
	if cfg.Cache.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
		})
		defer rdb.Close()
		logger.Info("redis cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
	}
	urlCache := cache.NewRedisURLCache(rdb, cfg.Cache.TTL, logger)

	// Optional GeoIP enrichment
	geoResolver, err := enrichment.NewGeoIPResolver(cfg.Enrichment.GeoIPDBPath)
	if err != nil {
		logger.Warn("geoip database not available, country resolution disabled",
			zap.String("path", cfg.Enrichment.GeoIPDBPath),
			zap.Error(err),
		)
		geoResolver = nil
	} else {
		defer geoResolver.Close()
	}

	// Event bus and click pipeline
	bus := eventbus.NewBus(eventbus.NewZapLoggerAdapter(logger))
	defer bus.Close()

	urlRepo := cache.NewCachedURLRepository(sqlite.NewURLRepository(db), urlCache)
	clickRepo := sqlite.NewClickRepository(db)

	shortenerSvc := shortener.NewService(urlRepo, logger, cfg.Shortener.CodeLength, cfg.Shortener.MaxAttempts)
	analyticsSvc := analytics.NewService(clickRepo, geoResolver)
	publisher := eventbus.NewClickPublisher(bus.Publisher(), logger)

	proc := tracker.NewProcessor(bus.Subscriber(), analyticsSvc, logger, tracker.Config{
		BatchSize:    cfg.Tracker.BatchSize,
		BatchTimeout: cfg.Tracker.BatchTimeout,
		BatchBudget:  cfg.Tracker.BatchBudget,
	})

	trackerCtx, stopTracker := context.WithCancel(context.Background())
	defer stopTracker()
	go func() {
		if err := proc.Run(trackerCtx); err != nil {
			logger.Error("tracker stopped with error", zap.Error(err))
		}
	}()

	// HTTP server
	handler := httpdelivery.NewHandler(shortenerSvc, analyticsSvc, publisher, logger, db, cfg.HTTPServer.BaseURL)
	rateLimiter := httpdelivery.NewRateLimiter(cfg.HTTPServer.RateLimitPerMinute)
	router := httpdelivery.NewRouter(handler, logger, rateLimiter)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.HTTPServer.Port),
			zap.String("base_url", cfg.HTTPServer.BaseURL),
			zap.Int("rate_limit", cfg.HTTPServer.RateLimitPerMinute),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	// Stop accepting new events, then let the tracker drain
	stopTracker()

	logger.Info("server stopped")
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}
