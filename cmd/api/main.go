// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Promptdeck HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build gateways: live (PostgreSQL + Redis + migrations) or fixture
//     (deterministic in-memory stores) depending on USE_FIXTURE_DATA.
//  4. Wire domain services and the shared like overlay.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/promptdeck/internal/api"
	"github.com/taibuivan/promptdeck/internal/auth"
	"github.com/taibuivan/promptdeck/internal/platform/config"
	"github.com/taibuivan/promptdeck/internal/platform/constants"
	"github.com/taibuivan/promptdeck/internal/platform/migration"
	pgstore "github.com/taibuivan/promptdeck/internal/platform/postgres"
	redisstore "github.com/taibuivan/promptdeck/internal/platform/redis"
	"github.com/taibuivan/promptdeck/internal/platform/sec"
	"github.com/taibuivan/promptdeck/internal/prompt"
	"github.com/taibuivan/promptdeck/internal/refine"
	"github.com/taibuivan/promptdeck/internal/social"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("fixture_mode", cfg.UseFixtureData),
	)

	// appCtx lives for the whole process and is cancelled on shutdown so
	// background goroutines (rate limiter cleanup) stop with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Gateways ───────────────────────────────────────────────────────
	var (
		promptRepository  prompt.Repository
		likeRepository    social.Repository
		userRepository    auth.UserRepository
		sessionRepository auth.SessionRepository
		tokenService      *sec.TokenService
		health            api.HealthDependencies
	)

	if cfg.UseFixtureData {
		// Fixture mode: deterministic in-memory gateways, no external deps.
		promptMemory := prompt.NewMemoryRepository()
		promptRepository = promptMemory
		likeRepository = social.NewMemoryRepository(promptMemory)
		userRepository = auth.NewMemoryUserRepository()
		sessionRepository = auth.NewMemorySessionRepository()

		tokenService, err = sec.NewEphemeralTokenService(constants.AuthIssuer)
		must(log, err, "initialize ephemeral jwt service")

		log.Info("fixture_gateways_ready")
	} else {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		promptRepository = prompt.NewRepository(pool)
		likeRepository = social.NewRepository(pool)
		userRepository = auth.NewUserRepository(pool)
		sessionRepository = auth.NewSessionRepository(rdb)

		tokenService, err = sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "initialize jwt service")

		health = api.HealthDependencies{
			CheckDatabase: func() error {
				return pgstore.Ping(context.Background(), pool)
			},
			CheckCache: func() error {
				return redisstore.Ping(context.Background(), rdb)
			},
		}
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	// The overlay is shared: the social service writes optimistic states
	// into it and the prompt handler invalidates it after fresh page loads.
	overlay := social.NewOverlay()

	promptService := prompt.NewService(promptRepository, log)
	socialService := social.NewService(likeRepository, promptRepository, overlay, log)
	authService := auth.NewService(userRepository, sessionRepository, tokenService, log)
	refineClient := refine.NewClient(cfg.RefineURL, log)

	// ── 5. HTTP Handlers ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Prompt:    prompt.NewHandler(promptService, overlay),
		Social:    social.NewHandler(socialService),
		Refine:    refine.NewHandler(refineClient),
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
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
