package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
	"github.com/spec-kit/issue-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Issues         *handlers.IssuesHandler
	Technicians    *handlers.TechniciansHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	api.Get("/issues", auth.RequireAdmin(), cfg.Issues.ListIssues)
	api.Get("/issues/mine", cfg.Issues.ListOwnIssues)
	api.Post("/issues", cfg.Issues.CreateIssue)
	api.Patch("/issues/:id", cfg.Issues.UpdateIssue)

	api.Get("/technicians", auth.RequireAdmin(), cfg.Technicians.ListTechnicians)
	api.Post("/technicians", auth.RequireAdmin(), cfg.Technicians.CreateTechnician)
}
