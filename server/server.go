// Package server wires the router, middleware chain and lifecycle of the
// dashboard API: session-gated application routes, public auth and probe
// endpoints, rate limiting and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/auth"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/config"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/handlers"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/interfaces"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.Handler
	tokens  *auth.TokenManager
	config  *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, store interfaces.DataStore, tokens *auth.TokenManager) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handlers.New(store, tokens),
		tokens:  tokens,
		config:  cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the shared middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes. Everything except login, health and
// metrics sits behind the session gate.
func (s *Server) setupRoutes() {
	s.router.Post("/auth/login", s.handler.Login)
	s.router.Get("/health", s.handler.Health)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.tokens))

		r.Post("/auth/logout", s.handler.Logout)
		r.Get("/auth/me", s.handler.Me)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.handler.ListDrugs)
			r.Post("/", s.handler.AddDrug)
			r.Post("/import", s.handler.ImportDrugs)
			r.Put("/{id}", s.handler.UpdateDrug)
			r.Delete("/{id}", s.handler.DeleteDrug)
			r.Post("/{id}/order", s.handler.OrderMore)
		})

		r.Route("/distributions", func(r chi.Router) {
			r.Get("/", s.handler.ListDistributions)
			r.Post("/", s.handler.CreateDistribution)
			r.Get("/{id}", s.handler.GetDistribution)
			r.Get("/{id}/track", s.handler.TrackDistribution)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", s.handler.ListPatients)
			r.Post("/", s.handler.RegisterPatient)
			r.Get("/{id}", s.handler.GetPatient)
		})
		r.Post("/dispense", s.handler.Dispense)
		r.Get("/medications", s.handler.ListMedications)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", s.handler.ReportSummary)
			r.Get("/{dataset}/export", s.handler.ExportReport)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handler.ListUsers)
			r.Post("/", s.handler.AddUser)
			r.Put("/{id}", s.handler.UpdateUser)
			r.Delete("/{id}", s.handler.DeleteUser)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", s.handler.ListLocations)
			r.Post("/", s.handler.AddLocation)
			r.Put("/{id}", s.handler.UpdateLocation)
			r.Delete("/{id}", s.handler.DeleteLocation)
		})
	})
}

// Start starts the server
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
