package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/api"
	"github.com/LenaDzi1/TimeManager-sub001/internal/metrics"
	"github.com/LenaDzi1/TimeManager-sub001/internal/middleware"
	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"
	"github.com/LenaDzi1/TimeManager-sub001/internal/service"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.MustRegister()

	repo, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if cfg.Migrate {
		if err := repo.Migrate(ctx); err != nil {
			zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	svc := service.NewService(
		service.NewReportService(repo),
		service.NewEventService(repo),
		service.NewRewardService(repo),
	)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPatch,
	}
	config.AllowHeaders = []string{"*"}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	api.NewSystemRoutes(router, repo)
	a := router.Group("/api/v1")
	api.NewReportRoutes(a, svc.ReportService)
	api.NewEventRoutes(a, svc.EventService)
	api.NewRewardRoutes(a, svc.RewardService)

	go reportPoolStats(ctx, repo)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shut down server", zap.Error(err))
	}
}

// reportPoolStats refreshes the pool gauges until ctx is cancelled.
func reportPoolStats(ctx context.Context, repo *repository.Repository) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			repo.Stats()
		}
	}
}
