// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Command web is the entry point for the Apotek pharmacy web server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire session manager, templates, and page handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hfahrudin/apotek/internal/auth"
	"github.com/hfahrudin/apotek/internal/drugs"
	"github.com/hfahrudin/apotek/internal/orders"
	"github.com/hfahrudin/apotek/internal/platform/config"
	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/migration"
	pgstore "github.com/hfahrudin/apotek/internal/platform/postgres"
	redisstore "github.com/hfahrudin/apotek/internal/platform/redis"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/users"
	"github.com/hfahrudin/apotek/internal/web"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "apotek"))
	slog.SetDefault(log)

	log.Info("[Apotek] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "apotek"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions, Templates, Workflow ──────────────────────────────────
	sessionStore := session.NewRedisStore(rdb, cfg.SessionTTL)
	sessions := session.NewManager(sessionStore, cfg.SessionCookieName, cfg.IsProduction())
	runner := workflow.NewRunner(sessions)

	renderer, err := render.New(log)
	must(log, err, "parse templates")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckSessions: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewAccountStore(pool), log)
	authHandler := auth.NewHandler(authService, sessions, runner, renderer)

	userService := users.NewService(users.NewStore(pool), log)
	userHandler := users.NewHandler(userService, sessions, runner, renderer)

	drugService := drugs.NewService(drugs.NewStore(pool), log)
	drugHandler := drugs.NewHandler(drugService, sessions, runner, renderer)

	orderService := orders.NewService(orders.NewStore(pool), log)
	orderHandler := orders.NewHandler(orderService, drugService, sessions, runner, renderer)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Users:     userHandler,
		Drugs:     drugHandler,
		Orders:    orderHandler,
	}

	server := web.NewServer(cfg, log, sessions, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
