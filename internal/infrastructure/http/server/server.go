// Package server provides the HTTP server for the calculation API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nutrilabel/v1/internal/infrastructure/config"
	"github.com/nutrilabel/v1/internal/infrastructure/http/handlers"
	custommiddleware "github.com/nutrilabel/v1/internal/infrastructure/http/middleware"
	"github.com/nutrilabel/v1/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers *handlers.APIHandlers
	metrics  *monitoring.Metrics
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	apiHandlers *handlers.APIHandlers,
	metrics *monitoring.Metrics,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger.Named("http-server"),
		handlers: apiHandlers,
		metrics:  metrics,
	}

	s.router = s.setupRouter()
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRouter configures routes and middleware
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if s.config.Monitoring.EnableMetrics {
		r.Use(custommiddleware.Metrics(s.metrics))
	}
	if s.config.Server.EnableCORS {
		r.Use(custommiddleware.CORS(s.config.Server.AllowedOrigins))
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.handlers.HealthCheck)
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/convert", s.handlers.Convert)
		r.Post("/recipes/nutrition", s.handlers.CalculateRecipe)
		r.Post("/recipes/label", s.handlers.GenerateLabel)
		r.Get("/ingredients", s.handlers.ListIngredients)
		r.Get("/foods/search", s.handlers.SearchFoods)
	})

	return r
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving. It blocks until the listener fails or closes.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
