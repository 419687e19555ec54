package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-task-tracker/internal/api/auth"
	"github.com/FACorreiaa/go-task-tracker/internal/api/todo"
	"github.com/FACorreiaa/go-task-tracker/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandler
	TodoHandler            todo.Handler
	UserHandler            user.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	RequireAdminMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to
// be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong")) //nolint:errcheck
	})

	// --- Public Auth Routes ---
	r.Group(func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", cfg.TodoHandler.ListTasks)
			r.Post("/", cfg.TodoHandler.CreateTask)
			r.Get("/{id}", cfg.TodoHandler.GetTask)
			r.Put("/{id}", cfg.TodoHandler.UpdateTask)
			r.Delete("/{id}", cfg.TodoHandler.DeleteTask)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", cfg.UserHandler.GetProfile)
			r.Put("/", cfg.UserHandler.UpdateProfile)
			r.Delete("/", cfg.UserHandler.DeleteProfile)
		})

		// --- Admin Routes ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireAdminMiddleware)
			r.Get("/users", cfg.UserHandler.ListUsers)
		})
	})

	return r
}
