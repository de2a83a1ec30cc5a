// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

// Command api is the entry point for the Meridian Pay portal API server.
//
// # Startup Sequence
//
//  1. Load .env (development convenience; real env always wins).
//  2. Initialize structured logger.
//  3. Load configuration from environment variables.
//  4. Connect to PostgreSQL (pgxpool).
//  5. Connect to Redis.
//  6. Run database migrations (idempotent).
//  7. Build the token service and revocation registry.
//  8. Wire domain services and HTTP handlers.
//  9. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"

	"github.com/meridianpay/portal/internal/api"
	"github.com/meridianpay/portal/internal/customer"
	"github.com/meridianpay/portal/internal/employee"
	"github.com/meridianpay/portal/internal/payment"
	"github.com/meridianpay/portal/internal/platform/config"
	"github.com/meridianpay/portal/internal/platform/constants"
	"github.com/meridianpay/portal/internal/platform/migration"
	pgstore "github.com/meridianpay/portal/internal/platform/postgres"
	redisstore "github.com/meridianpay/portal/internal/platform/redis"
	"github.com/meridianpay/portal/internal/platform/sec"
)

func main() {
	// ── 1. Environment ─────────────────────────────────────────────────────
	// .env is a local development convenience; values already present in the
	// process environment are never overridden.
	_ = godotenv.Load()

	// ── 2. Logger ──────────────────────────────────────────────────────────
	// Initialized early so every startup error is structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 3. Configuration ──────────────────────────────────────────────────
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
	)

	// A missing signing secret already failed config.Load in production.
	// Outside production the server may run on an ephemeral secret; every
	// restart then invalidates all outstanding tokens, so make it loud.
	if cfg.JWTSecret == "" {
		generated, err := sec.GenerateSecureToken(32)
		must(log, err, "generate ephemeral jwt secret")
		cfg.JWTSecret = generated

		log.Warn("JWT_SECRET not set; using an EPHEMERAL secret; all tokens die with this process")
	}

	// Root context for startup. A 30s deadline catches misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 5. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Service & Revocation Registry ────────────────────────────
	tokenService, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer)
	must(log, err, "initialize token service")

	revocations := sec.NewRevocations()

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	customerRepository := customer.NewPostgresRepository(pool)
	resetTokenRepository := customer.NewResetTokenRepository(rdb)
	customerService := customer.NewService(customerRepository, resetTokenRepository, tokenService, revocations)
	customerHandler := customer.NewHandler(customerService)

	employeeRepository := employee.NewPostgresRepository(pool)
	employeeService := employee.NewService(employeeRepository, tokenService, revocations)
	employeeHandler := employee.NewHandler(employeeService)

	paymentRepository := payment.NewPostgresRepository(pool)
	paymentService := payment.NewService(paymentRepository)
	paymentHandler := payment.NewHandler(paymentService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Customer:  customerHandler,
		Employee:  employeeHandler,
		Payment:   paymentHandler,
	}

	server := api.NewServer(serverCtx, cfg, log, tokenService, revocations, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
