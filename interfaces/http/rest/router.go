package rest

import (
	"net/http"

	"todoshare-backend/application/services"
	"todoshare-backend/infrastructure/config"
	"todoshare-backend/interfaces/http/rest/handlers"
	"todoshare-backend/interfaces/http/rest/middleware"
	"todoshare-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	service   *services.TodoService
	validator *auth.JWTValidator
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	service *services.TodoService,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		service:   service,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// To-do endpoints
	router.Route("/todos", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		todoHandler := handlers.NewTodoHandler(rt.service, rt.logger)
		r.Get("/", todoHandler.GetTodos)
		r.Post("/", todoHandler.CreateTodo)
		r.Patch("/{todoID}", todoHandler.UpdateTodo)
		r.Delete("/{todoID}", todoHandler.DeleteTodo)
		r.Get("/{todoID}/users", todoHandler.GetUsers)
		r.Post("/{todoID}/share", todoHandler.ShareTodo)
		r.Post("/{todoID}/attachment", todoHandler.CreateAttachment)
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
