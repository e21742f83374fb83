package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lindo/claim-system-api/internal/api/handlers"
	"github.com/lindo/claim-system-api/internal/api/middleware"
	"github.com/lindo/claim-system-api/internal/config"
	"github.com/lindo/claim-system-api/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.Auth)

	r.Route("/api/v1/auth", func(r chi.Router) {
		// Public session routes
		r.Post("/login", authHandler.Login)
		r.Post("/validate", authHandler.ValidateSession)
		r.Post("/logout", authHandler.Logout)

		// User and role management, behind an active session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/users", userHandler.Create)
			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Post("/change-password", userHandler.ChangePassword)
			r.Get("/roles", userHandler.ListRoles)
		})
	})

	return r
}
