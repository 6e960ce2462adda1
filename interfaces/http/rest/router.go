package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"conceptcraft-backend/infrastructure/di"
	"conceptcraft-backend/interfaces/http/rest/handlers"
	"conceptcraft-backend/interfaces/http/rest/middleware"
	apperrors "conceptcraft-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()
	c := rt.container

	errorHandler := apperrors.NewErrorHandler(rt.logger, c.Config.IsDevelopment())

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))

	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.conceptcraft.dev"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	generationHandler := handlers.NewGenerationHandler(c.Generator, c.Popular, c.Content, errorHandler, rt.logger)
	frameworkHandler := handlers.NewFrameworkHandler(c.Content, c.Relationships, errorHandler, rt.logger)
	conceptHandler := handlers.NewConceptHandler(c.Content, errorHandler, rt.logger)
	publicHandler := handlers.NewPublicHandler(c.Content, errorHandler, rt.logger)

	// Public read API
	router.Route("/api", func(r chi.Router) {
		r.Get("/frameworks", publicHandler.ListFrameworks)
		r.Get("/frameworks/{frameworkId}", publicHandler.GetFramework)
		r.Get("/concepts/{id}", publicHandler.GetConcept)
	})

	// Admin API: bearer token plus a per-user rate limit
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(c.JWTValidator, rt.logger))
		r.Use(middleware.RequireRole("admin"))
		r.Use(middleware.RateLimit(c.RateLimiter, rt.logger))

		// Generation
		r.Post("/generate-concept", generationHandler.GenerateConcept)
		r.Post("/auto-create-concept", generationHandler.AutoCreateConcept)
		r.Get("/popular-concepts/{framework}", generationHandler.GetPopularConcepts)
		r.Post("/popular-concepts/{framework}", generationHandler.SearchPopularConcepts)

		// Frameworks
		r.Route("/frameworks", func(r chi.Router) {
			r.Post("/", frameworkHandler.CreateFramework)
			r.Get("/", frameworkHandler.ListFrameworks)
			r.Get("/{frameworkId}", frameworkHandler.GetFramework)
			r.Put("/{frameworkId}", frameworkHandler.RenameFramework)
			r.Delete("/{frameworkId}", frameworkHandler.DeleteFramework)
			r.Post("/{frameworkId}/concepts", frameworkHandler.AddConcept)
			r.Delete("/{frameworkId}/concepts/{conceptId}", frameworkHandler.RemoveConcept)
		})

		// Concepts
		r.Route("/concepts", func(r chi.Router) {
			r.Post("/", conceptHandler.CreateConcept)
			r.Get("/", conceptHandler.ListConcepts)
			r.Get("/{id}", conceptHandler.GetConcept)
			r.Put("/{id}", conceptHandler.UpdateConcept)
			r.Delete("/{id}", conceptHandler.DeleteConcept)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
