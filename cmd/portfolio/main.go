// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"portfolio-api/internal/ai"
	"portfolio-api/internal/config"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/logging"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/store"
	"portfolio-api/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Portfolio API - headless portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DATABASE_URL     PostgreSQL connection string (required unless MOCK_DB=true)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APP_ENV          Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MOCK_DB          Serve canned responses without a database (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DO_SEED          Seed default admin and singleton rows on startup (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AI_API_KEY       API key for the AI proxy endpoints (optional)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("portfolio-api %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	slog.Info("starting", "version", versionInfo.String(), "env", cfg.Env)

	var queries *store.Store
	if cfg.MockDB {
		slog.Warn("mock mode enabled, all responses are canned and no database is used")
	} else {
		slog.Info("connecting to database")
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()

		// Run migrations
		slog.Info("running database migrations")
		if err := store.Migrate(db.DB); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")

		queries = store.New(db)

		// Upgrade logger to also write WARN and ERROR logs to the event log table
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
		logger = slog.New(logging.NewEventLogHandler(textHandler, queries))
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")

		// Seed default data
		if cfg.DoSeed {
			if err := store.Seed(context.Background(), queries); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
		}
	}

	aiClient := ai.New(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	if aiClient.Enabled() {
		slog.Info("AI proxy enabled", "model", cfg.AIModel)
	}

	api := handler.NewAPI(cfg, queries, aiClient)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(middleware.Recoverer(!cfg.IsProduction()))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.CORS)
	r.Mount("/", api)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
