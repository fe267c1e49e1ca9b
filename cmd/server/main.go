package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/config"
	"github.com/saferoute/backend/internal/delivery/http"
	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/feed"
	"github.com/saferoute/backend/internal/repository/postgres"
	"github.com/saferoute/backend/internal/service"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer zap.L().Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		zap.L().Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Dependency Injection: Repository
	repo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	// Dependency Injection: Services
	safetySvc := service.NewSafetyService(repo, cfg.Policy(), cfg.Scoring.Workers)

	warmCtx, cancelWarm := context.WithTimeout(ctx, 30*time.Second)
	if _, err := safetySvc.Refresh(warmCtx); err != nil {
		zap.L().Warn("initial zone build failed, will retry on first request", zap.Error(err))
	}
	cancelWarm()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		safetySvc.RunRefresher(ctx, cfg.Zone.RefreshInterval)
	}()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "SafeRoute API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, safetySvc)

	// Graceful shutdown
	go func() {
		zap.L().Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	stop()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
	wg.Wait()
	zap.L().Info("server exited gracefully")
}

// openRepository connects to PostgreSQL when DATABASE_URL is set and
// reachable. Otherwise incidents come from INCIDENT_FEED_PATH or the
// built-in sample.
func openRepository(ctx context.Context, cfg *config.Config) (domain.IncidentRepository, func()) {
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(connectCtx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(connectCtx)
			if err != nil {
				pool.Close()
			}
		}
		if err == nil {
			zap.L().Info("connected to PostgreSQL", zap.Int("source_srid", cfg.Incident.SourceSRID))
			return postgres.NewPostgresRepository(pool, cfg.Incident.SourceSRID), pool.Close
		}
		zap.L().Warn("could not connect to database, running with mock data", zap.Error(err))
	}

	if cfg.Incident.FeedPath != "" {
		incidents, err := feed.LoadFile(cfg.Incident.FeedPath)
		if err != nil {
			zap.L().Fatal("load incident feed", zap.String("path", cfg.Incident.FeedPath), zap.Error(err))
		}
		zap.L().Info("serving incident feed",
			zap.String("path", cfg.Incident.FeedPath),
			zap.Int("incidents", len(incidents)),
		)
		return postgres.NewMockRepository(incidents), func() {}
	}

	zap.L().Info("serving built-in sample incidents")
	return postgres.NewMockRepository(nil), func() {}
}
