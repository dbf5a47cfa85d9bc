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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lecturer-admin-api/api/swagger"
	"github.com/noah-isme/lecturer-admin-api/internal/handler"
	"github.com/noah-isme/lecturer-admin-api/internal/repository"
	"github.com/noah-isme/lecturer-admin-api/internal/service"
	"github.com/noah-isme/lecturer-admin-api/pkg/cache"
	"github.com/noah-isme/lecturer-admin-api/pkg/config"
	"github.com/noah-isme/lecturer-admin-api/pkg/database"
	"github.com/noah-isme/lecturer-admin-api/pkg/logger"
)

// @title Lecturer Admin API
// @version 1.0.0
// @description Internal administration of lecturers, courses, assignments and qualifications
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 10 * time.Second

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, listing cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	metrics := service.NewMetricsService()
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ListingTTL, logr, cfg.Cache.Enabled)
	validate := service.NewValidator()

	store := service.StoreOptions{QueryTimeout: cfg.Database.QueryTimeout, ListingTTL: cfg.Cache.ListingTTL}
	lecturerRepo := repository.NewLecturerRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	lecturers := service.NewLecturerService(lecturerRepo, cacheSvc, metrics, validate, store, logr)
	courses := service.NewCourseService(courseRepo, cacheSvc, metrics, validate, store, logr)
	relations := service.NewRelationService(
		repository.NewAssignmentRepository(db),
		repository.NewQualificationRepository(db),
		lecturerRepo,
		courseRepo,
		cacheSvc,
		metrics,
		validate,
		store,
		service.ReconcileOptions{Atomic: cfg.Reconcile.Atomic, Concurrency: cfg.Reconcile.Concurrency},
		logr,
	)
	exports := service.NewExportService(lecturers, courses, service.ExportConfig{Enabled: cfg.Exports.Enabled, MaxRows: cfg.Exports.MaxRows}, logr, nil, nil)

	checks := []handler.ReadinessCheck{{Name: "postgres", Probe: db.PingContext}}
	if redisClient != nil {
		checks = append(checks, handler.ReadinessCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	r := newRouter(cfg, logr, routes{
		lecturers: handler.NewLecturerHandler(lecturers),
		courses:   handler.NewCourseHandler(courses),
		relations: handler.NewRelationHandler(relations),
		exports:   handler.NewExportHandler(exports),
		metrics:   handler.NewMetricsHandler(metrics, checks...),
		collector: metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
