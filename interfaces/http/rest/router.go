package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"textgraph/interfaces/http/rest/handlers"
	"textgraph/interfaces/http/rest/middleware"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router creates and configures the HTTP router
type Router struct {
	expressions *handlers.ExpressionHandler
	editions    *handlers.EditionHandler
	annotations *handlers.AnnotationHandler
	categories  *handlers.CategoryHandler
	persons     *handlers.PersonHandler
	apiKeys     *handlers.APIKeyHandler
	auth        middleware.Authenticator
	pinger      Pinger
	enableCORS  bool
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	expressions *handlers.ExpressionHandler,
	editions *handlers.EditionHandler,
	annotations *handlers.AnnotationHandler,
	categories *handlers.CategoryHandler,
	persons *handlers.PersonHandler,
	apiKeys *handlers.APIKeyHandler,
	auth middleware.Authenticator,
	pinger Pinger,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		expressions: expressions,
		editions:    editions,
		annotations: annotations,
		categories:  categories,
		persons:     persons,
		apiKeys:     apiKeys,
		auth:        auth,
		pinger:      pinger,
		enableCORS:  enableCORS,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderAPIKey, middleware.HeaderApplication, "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/v2", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.auth, rt.logger))

		// Expression endpoints
		r.Route("/texts", func(r chi.Router) {
			r.Post("/", rt.expressions.CreateExpression)
			r.Get("/", rt.expressions.ListExpressions)
			r.Get("/{id}", rt.expressions.GetExpression)
			r.Put("/{id}/title", rt.expressions.MergeTitle)

			// Manifestations of an expression
			r.Post("/{id}/instances", rt.editions.CreateEdition)
			r.Get("/{id}/instances", rt.editions.ListEditions)
		})

		// Edition endpoints
		r.Route("/editions", func(r chi.Router) {
			r.Get("/{id}/content", rt.editions.GetContent)
			r.Put("/{id}/content", rt.editions.UpdateContent)
			r.Get("/{id}/metadata", rt.editions.GetMetadata)
			r.Put("/{id}/metadata", rt.editions.UpdateMetadata)
			r.Delete("/{id}", rt.editions.DeleteEdition)
			r.Get("/{id}/related", rt.editions.GetRelated)
			r.Get("/{id}/segment-related", rt.editions.GetSegmentRelated)
		})

		// Annotation endpoints
		r.Route("/annotations/{kind}", func(r chi.Router) {
			r.Post("/", rt.annotations.CreateAnnotation)
			r.Get("/{id}", rt.annotations.GetAnnotation)
			r.Put("/{id}", rt.annotations.UpdateAnnotation)
			r.Delete("/{id}", rt.annotations.DeleteAnnotation)
		})

		// Category endpoints, scoped by the X-Application header
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", rt.categories.ListCategories)
			r.Post("/", rt.categories.CreateCategory)
		})

		// Person endpoints
		r.Route("/persons", func(r chi.Router) {
			r.Post("/", rt.persons.CreatePerson)
			r.Get("/", rt.persons.ListPersons)
			r.Get("/{id}", rt.persons.GetPerson)
			r.Delete("/{id}", rt.persons.DeletePerson)
		})

		// API key administration
		r.Route("/api-keys", func(r chi.Router) {
			r.Post("/", rt.apiKeys.CreateAPIKey)
			r.Get("/", rt.apiKeys.ListAPIKeys)
			r.Delete("/{id}", rt.apiKeys.RevokeAPIKey)
			r.Post("/{id}/rotate", rt.apiKeys.RotateAPIKey)
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

// readinessCheck reports ready once the graph database answers
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if rt.pinger != nil {
		if err := rt.pinger.Ping(req.Context()); err != nil {
			rt.logger.Warn("readiness check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
