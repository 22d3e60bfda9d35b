// Package server provides the HTTP server for the Sandow pose scoring
// service.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/catalog"
	"github.com/ayusman/sandow/internal/coach"
	"github.com/ayusman/sandow/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	Store  *catalog.Store
	Coach  *coach.Coach
	Logger *zap.Logger
}

// Server represents the HTTP server for the Sandow application.
type Server struct {
	config Config
	router chi.Router
	logger *zap.Logger
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config: config,
		router: chi.NewRouter(),
		logger: logger.Named("server"),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger(s.logger))

	s.router.Get("/api/health", s.handleHealth)

	// Pose analysis and the live socket are pure engine surfaces and are
	// always available.
	scoreHandler := api.NewScoreHandler(s.config.Coach, s.logger)
	s.router.Post("/api/analyze", scoreHandler.Analyze)

	liveHandler := NewLiveHandler(s.logger)
	s.router.Get("/api/live", liveHandler.ServeHTTP)

	// Register the reference catalog API if a store is configured
	if s.config.Store != nil {
		referenceHandler := api.NewReferenceHandler(s.config.Store, s.logger)
		s.router.Route("/api/references", func(r chi.Router) {
			r.Get("/", referenceHandler.List)
			r.Post("/", referenceHandler.Create)
			r.Get("/{id}", referenceHandler.Get)
			r.Put("/{id}", referenceHandler.Update)
			r.Delete("/{id}", referenceHandler.Delete)
		})
	}

	// Register comparison endpoints if a coach is configured
	if s.config.Coach != nil {
		s.router.Post("/api/compare/{id}", scoreHandler.Compare)
		s.router.Post("/api/best-match", scoreHandler.BestMatch)
	}
}

// requestLogger logs one line per request, carrying the chi request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}
