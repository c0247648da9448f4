package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/internal/handler"
	"github.com/noah-isme/brgy-tracker-api/internal/models"
	"github.com/noah-isme/brgy-tracker-api/internal/repository"
	"github.com/noah-isme/brgy-tracker-api/internal/router"
	"github.com/noah-isme/brgy-tracker-api/internal/service"
	"github.com/noah-isme/brgy-tracker-api/pkg/cache"
	"github.com/noah-isme/brgy-tracker-api/pkg/config"
	"github.com/noah-isme/brgy-tracker-api/pkg/database"
	"github.com/noah-isme/brgy-tracker-api/pkg/logger"
	"github.com/noah-isme/brgy-tracker-api/pkg/tracing"
)

// @title Barangay Senior & PWD Support Tracker API
// @version 1.0.0
// @description Registry of senior citizens and persons with disability with benefits, visits and assistance drives.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	shutdownTracing := tracing.Init(ctx, cfg.Tracing, tracing.Options{Environment: cfg.Env, Version: handler.Version}, logr)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logr.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logr.Sugar().Infow("database ready", "driver", cfg.Database.Driver)

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// the dashboard still works uncached
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	svcs := service.NewServices(db, service.Deps{
		Validator: models.NewValidator(),
		Logger:    logr,
		Metrics:   metrics,
		Cache:     cacheSvc,
		CacheTTL:  cfg.Dashboard.CacheTTL,
	})

	params := router.Params{
		Config:   cfg,
		Logger:   logr,
		DB:       db,
		Services: svcs,
		Metrics:  metrics,
	}
	if redisClient != nil {
		params.Cache = cacheRepo
	}
	engine, err := router.New(params)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
