package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-booking/internal/api/http/handlers"
	"github.com/spec-kit/session-booking/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Sessions       *handlers.SessionsHandler
	Teachers       *handlers.TeachersHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under /api except the auth
// endpoints requires a valid bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	sessions := protected.Group("/session")
	sessions.Get("", cfg.Sessions.List)
	sessions.Post("", cfg.Sessions.Create)
	sessions.Get("/:id", cfg.Sessions.Get)
	sessions.Put("/:id", cfg.Sessions.Update)
	sessions.Delete("/:id", cfg.Sessions.Delete)
	sessions.Post("/:id/participate/:userId", cfg.Sessions.Participate)
	sessions.Delete("/:id/participate/:userId", cfg.Sessions.Unparticipate)

	teachers := protected.Group("/teacher")
	teachers.Get("", cfg.Teachers.List)
	teachers.Get("/:id", cfg.Teachers.Get)

	users := protected.Group("/user")
	users.Get("/:id", cfg.Users.Get)
	users.Delete("/:id", cfg.Users.Delete)
}
