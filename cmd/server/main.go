package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/cache"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/database"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/logging"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/routes"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.UsesSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also kept in system_logs
	dbLogHandler := logging.NewDBHandler(database.DB)
	logging.Attach(stdout, dbLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Recipe cache
	store, err := cache.New(cfg.CacheDriver, cfg.RedisURL)
	if err != nil {
		slog.Error("cache init failed", "driver", cfg.CacheDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("recipe cache ready", "driver", cfg.CacheDriver, "ttl", cfg.CacheTTL.String())

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	recipeService := services.NewRecipeService(database.DB, store, cfg.CacheTTL)
	commentService := services.NewCommentService(database.DB, recipeService)
	savedService := services.NewSavedService(database.DB, recipeService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	healthHandler := handlers.NewHealthHandler(database.DB)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	commentHandler := handlers.NewCommentHandler(commentService)
	savedHandler := handlers.NewSavedHandler(savedService)

	// Sentry error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := routes.NewApp(cfg, sentryEnabled)
	routes.Setup(app, cfg, authHandler, healthHandler, recipeHandler, commentHandler, savedHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := store.Close(); err != nil {
		slog.Error("cache close error", "error", err)
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
