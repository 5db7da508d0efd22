// Package api provides the HTTP API server and handlers for ShelfPick.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfpick/shelfpick-server/internal/config"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

const apiVersion = "1.0.0"

// Services groups the business logic services used by the API server.
type Services struct {
	Library *service.LibraryService
	Funnel  *service.FunnelService
	Enrich  *service.EnrichmentService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	config   *config.Config
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, cfg *config.Config, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		services: services,
		config:   cfg,
		router:   router,
		logger:   logger,
	}
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(cfg.Server.Name+" API", apiVersion)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerLibraryRoutes()
	s.registerFunnelRoutes()
	s.registerEnrichRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}
