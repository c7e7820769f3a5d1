// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package web wires together the HTTP router, middleware chain, and all page
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/web are allowed to import net/http server primitives.
*/
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hfahrudin/apotek/internal/auth"
	"github.com/hfahrudin/apotek/internal/drugs"
	"github.com/hfahrudin/apotek/internal/orders"
	"github.com/hfahrudin/apotek/internal/platform/config"
	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/metrics"
	"github.com/hfahrudin/apotek/internal/platform/middleware"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/users"
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

// Handlers groups all page handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the sign-in and sign-out pages.
	Auth *auth.Handler

	// Users handles account administration, admin only.
	Users *users.Handler

	// Drugs handles the inventory catalogue.
	Drugs *drugs.Handler

	// Orders handles sale recording and history.
	Orders *orders.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups behind their role gates.
func NewServer(cfg *config.Config, log *slog.Logger, sessions *session.Manager, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit())
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)
	r.Use(sessions.Middleware())

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// # Pages

	h.Auth.Register(r)

	// The root is a role-aware dispatcher, not a page of its own.
	r.Get("/", redirectToLanding)

	r.Route("/users", func(router chi.Router) {
		router.Use(middleware.RequireRole(sessions, sec.RoleAdmin))
		h.Users.Register(router)
	})

	r.Route("/drugs", func(router chi.Router) {
		router.Use(middleware.RequireRole(sessions, sec.RoleAdmin, sec.RolePharmacist))
		h.Drugs.Register(router)
	})

	r.Route("/orders", func(router chi.Router) {
		router.Use(middleware.RequireRole(sessions,
			sec.RoleAdmin, sec.RolePharmacist, sec.RoleCashier, sec.RoleCustomer))
		h.Orders.Register(router)
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

// redirectToLanding sends the visitor to their role's landing page, or to
// the sign-in form when nobody is signed in.
func redirectToLanding(writer http.ResponseWriter, request *http.Request) {
	sess := session.FromContext(request.Context())
	if sess == nil || !sess.IsAuthenticated() {
		http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)
		return
	}
	http.Redirect(writer, request, auth.LandingPath(sess.Role), http.StatusSeeOther)
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
