// Package api exposes the goal and gift operations over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ernitpt/goal-gift-service/pkg/cache"
	"github.com/ernitpt/goal-gift-service/pkg/config"
	"github.com/ernitpt/goal-gift-service/pkg/repository"
	"github.com/ernitpt/goal-gift-service/pkg/submit"
)

// Server represents the HTTP API server.
type Server struct {
	config      config.ServerConfig
	router      *chi.Mux
	submitter   *submit.Submitter
	gifts       repository.GiftRepository
	goals       repository.GoalRepository
	experiences cache.ExperienceCache
	catalog     *config.Catalog
	logger      *slog.Logger
}

// NewServer creates a new API server.
func NewServer(
	cfg config.ServerConfig,
	submitter *submit.Submitter,
	goals repository.GoalRepository,
	gifts repository.GiftRepository,
	experiences cache.ExperienceCache,
	catalog *config.Catalog,
	logger *slog.Logger,
) *Server {
	s := &Server{
		config:      cfg,
		submitter:   submitter,
		goals:       goals,
		gifts:       gifts,
		experiences: experiences,
		catalog:     catalog,
		logger:      logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID", "X-Device-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", s.handleSubmitGoal)
			r.Post("/validate", s.handleValidateGoal)
			r.Get("/{goalID}", s.handleGetGoal)
		})

		r.Post("/gifts/{giftID}/claim", s.handleClaimGift)

		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", s.handleListExperiences)
			r.Get("/{experienceID}", s.handleGetExperience)
		})

		r.Get("/categories", s.handleListCategories)
		r.Get("/drafts", s.handleGetDraft)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
