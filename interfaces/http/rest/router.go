package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"notes-backend/application/commands/bus"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/interfaces/http/rest/handlers"
	"notes-backend/interfaces/http/rest/middleware"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// Dependencies holds everything the router needs to serve requests.
// Metrics and Ready are optional.
type Dependencies struct {
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
	Validator   *auth.JWTValidator
	Errors      *pkgerrors.ErrorHandler
	Metrics     *observability.Collector
	Ready       func(ctx context.Context) error
	EnableCORS  bool
	CORSOrigins []string
	Logger      *zap.Logger
}

// Router creates and configures the HTTP router
type Router struct {
	deps Dependencies
}

// NewRouter creates a new router instance
func NewRouter(deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Errors == nil {
		deps.Errors = pkgerrors.NewErrorHandler(deps.Logger, false)
	}
	return &Router{deps: deps}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.deps.Errors.Middleware)
	router.Use(middleware.Logger(rt.deps.Logger))
	if rt.deps.Metrics != nil {
		router.Use(middleware.Metrics(rt.deps.Metrics))
	}

	if rt.deps.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.deps.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.deps.Errors.HandleStatus(w, r, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.deps.Errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.deps.Metrics != nil {
		router.Handle("/metrics", rt.deps.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.deps.Validator, rt.deps.Errors, rt.deps.Logger))

		r.Get("/auth/me", handlers.NewAuthHandler(rt.deps.Errors, rt.deps.Logger).Me)

		r.Route("/notes", func(r chi.Router) {
			noteHandler := handlers.NewNoteHandler(rt.deps.CommandBus, rt.deps.QueryBus, rt.deps.Errors, rt.deps.Logger)
			r.Get("/", noteHandler.ListNotes)
			r.Post("/", noteHandler.CreateNote)
			r.Get("/stats", noteHandler.GetStats)
			r.Get("/{id}", noteHandler.GetNote)
			r.Put("/{id}", noteHandler.UpdateNote)
			r.Delete("/{id}", noteHandler.DeleteNote)
			r.Put("/{id}/favorite", noteHandler.ToggleFavorite)
			r.Put("/{id}/archive", noteHandler.ToggleArchive)
		})

		r.Route("/categories", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(rt.deps.CommandBus, rt.deps.QueryBus, rt.deps.Errors, rt.deps.Logger)
			r.Get("/", categoryHandler.ListCategories)
			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports whether storage is reachable
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.deps.Ready != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := rt.deps.Ready(ctx); err != nil {
			rt.deps.Logger.Warn("Readiness check failed", zap.Error(err))
			rt.deps.Errors.HandleStatus(w, req, http.StatusServiceUnavailable, "Storage unavailable")
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
