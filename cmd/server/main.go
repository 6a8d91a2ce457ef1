package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ernitpt/goal-gift-service/internal/api"
	"github.com/ernitpt/goal-gift-service/pkg/cache"
	"github.com/ernitpt/goal-gift-service/pkg/client"
	"github.com/ernitpt/goal-gift-service/pkg/config"
	"github.com/ernitpt/goal-gift-service/pkg/db"
	"github.com/ernitpt/goal-gift-service/pkg/draft"
	"github.com/ernitpt/goal-gift-service/pkg/notify"
	"github.com/ernitpt/goal-gift-service/pkg/repository"
	"github.com/ernitpt/goal-gift-service/pkg/submit"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.LoadServiceConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting goal-gift-service",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Connect PostgreSQL and apply the schema
	database, err := db.Connect(db.NewConfigFromEnv())
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	if err := repository.Migrate(initCtx, database); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected successfully")

	goals := repository.NewPostgresGoalRepository(database)
	gifts := repository.NewPostgresGiftRepository(database)
	notifier := notify.NewPostgresNotifier(database)

	// Draft store
	redisClient, err := draft.Connect(initCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()
	drafts := draft.NewRedisStore(redisClient, draft.DefaultTTL)

	// Category catalog
	catalogLoader := config.NewCatalogLoader(cfg.Catalog.Path, logger)
	catalog, err := catalogLoader.LoadCatalog()
	if err != nil {
		logger.Error("failed to load category catalog", "error", err)
		os.Exit(1)
	}

	// Experience catalog client and cache
	var experienceClient client.ExperienceClient
	if cfg.Experience.Mode == "mock" {
		experienceClient = client.NewDevMockExperienceClient()
	} else {
		experienceClient = client.NewHTTPExperienceClient(cfg.Experience.BaseURL, cfg.Experience.APIKey, cfg.Experience.Timeout)
	}

	experiences, err := cache.NewInMemoryExperienceCache(initCtx, experienceClient, logger)
	if err != nil {
		logger.Error("failed to build experience cache", "error", err)
		os.Exit(1)
	}

	submitter := submit.NewSubmitter(goals, gifts, notifier, drafts, logger)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, submitter, goals, gifts, experiences, catalog, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// Let in-flight notifications settle before exiting.
	submitter.Wait()

	logger.Info("shutdown complete")
}
