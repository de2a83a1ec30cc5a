// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport (chi
    router), the rate-limit policy instances, and the auth gates.
  - Only this package and cmd/api are allowed to import net/http server
    primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridianpay/portal/internal/customer"
	"github.com/meridianpay/portal/internal/employee"
	"github.com/meridianpay/portal/internal/payment"
	"github.com/meridianpay/portal/internal/platform/config"
	"github.com/meridianpay/portal/internal/platform/constants"
	"github.com/meridianpay/portal/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Customer handles customer registration, login, and password lifecycle.
	Customer *customer.Handler

	// Employee handles staff login and admin staff management.
	Employee *employee.Handler

	// Payment handles capture (customer) and review (staff) endpoints.
	Payment *payment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The five rate-limit policies become five limiter instances owned here;
// routes that share a budget share the instance. ctx bounds the limiter
// cleanup goroutines and the burst guard's client table eviction.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	revocations middleware.RevocationChecker,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Rate-Limit Policy Instances
	generalGuard := middleware.NewLimiter(middleware.PolicyGeneral)
	authGuard := middleware.NewLimiter(middleware.PolicyAuth)
	bruteGuard := middleware.NewLimiter(middleware.PolicyBruteForce)
	paymentGuard := middleware.NewLimiter(middleware.PolicyPayment)
	sensitiveGuard := middleware.NewLimiter(middleware.PolicySensitive)

	for _, guard := range []*middleware.Limiter{
		generalGuard, authGuard, bruteGuard, paymentGuard, sensitiveGuard,
	} {
		guard.StartCleanup(ctx)
	}

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBody)
	r.Use(middleware.BurstGuard(ctx))
	r.Use(generalGuard.Handler())
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier, revocations))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix. The
	// per-policy limiters are threaded into the routes that draw on them.
	r.Route("/v1", func(api chi.Router) {
		api.Mount("/auth", h.Customer.Routes(authGuard, bruteGuard, sensitiveGuard))
		api.Mount("/payments", h.Payment.CustomerRoutes(paymentGuard))
		api.Mount("/employee/payments", h.Payment.EmployeeRoutes())
		api.Mount("/employee", h.Employee.Routes(authGuard, bruteGuard))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the underlying handler for end-to-end tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
