package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/content"
	"spamlab/internal/counter"
	"spamlab/internal/db"
	"spamlab/internal/email"
	"spamlab/internal/handlers"
	"spamlab/internal/jobs"
	"spamlab/internal/logging"
	"spamlab/internal/metrics"
	"spamlab/internal/server"
	"spamlab/internal/simulator"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := content.Load(cfg.ContentFile)
	if err != nil {
		logger.Fatal("Failed to load content", zap.String("file", cfg.ContentFile), zap.Error(err))
	}

	checks := map[string]handlers.Pinger{}
	deps := counter.Deps{}

	// Redis backs the counter, sessions and the rate limiter when selected
	var storage fiber.Storage
	if cfg.UsesRedis() {
		store := redis.New(redis.Config{URL: cfg.RedisURL})
		defer func() { _ = store.Close() }()
		deps.Redis = store
		storage = store
		logger.Info("Connected to Redis")
	}

	if cfg.UsesDatabase() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations completed successfully")
		deps.DB = database
	}

	backend, err := counter.Open(ctx, cfg, deps, logger)
	if err != nil {
		logger.Fatal("Failed to open submission counter", zap.Error(err))
	}
	defer func() { _ = backend.Close() }()
	if cfg.CounterBackend != config.BackendMemory {
		checks[backend.Name] = backend
	}

	// Start spam ticker
	ticker := jobs.NewSpamTicker(cfg.SpamTickerStart, cfg.SpamTickerInterval, logger)
	go ticker.Start(ctx)

	if cfg.MetricsEnabled {
		metrics.Init(backend.Counter, ticker.Count, logger)
	}

	srv := server.New(cfg, logger, storage)
	srv.RegisterRoutes(server.Deps{
		Catalog: catalog,
		Counter: backend.Counter,
		Spam:    ticker,
		Models:  simulator.NewModelSimulator(),
		Mailer:  email.NewService(cfg, logger),
		Checks:  checks,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
		}
		stop()
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server exited")
}
