package api

import (
	"net/http"

	"github.com/dicapisar/taskboard/internal/api/handlers"
	"github.com/dicapisar/taskboard/internal/api/middleware"
	"github.com/dicapisar/taskboard/internal/config"
	"github.com/dicapisar/taskboard/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.CacheExpiration)
	userHandler := handlers.NewUserHandler(services.User)
	settingsHandler := handlers.NewSettingsHandler(services.User)
	taskHandler := handlers.NewTaskHandler(services.Task)

	sessionMiddleware := middleware.NewSessionMiddleware(services.Cache)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes: login and signup must be reachable without a
		// session.
		r.Post("/login", authHandler.Login)
		r.Post("/users", userHandler.Create)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.RequireSession)

			r.Post("/logout", authHandler.Logout)

			r.Get("/users", userHandler.List)

			r.Route("/settings", func(r chi.Router) {
				r.Post("/details", settingsHandler.UpdateDetails)
				r.Post("/password", settingsHandler.UpdatePassword)
				r.Delete("/", settingsHandler.DeleteAccount)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/{id}", taskHandler.Get)
				r.Put("/{id}", taskHandler.Update)
				r.Post("/{id}/status", taskHandler.ChangeStatus)
				r.Delete("/{id}", taskHandler.Delete)
			})
		})
	})

	return r
}
