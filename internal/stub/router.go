package stub

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/auth"
	"github.com/tasker-hq/tasker-go/internal/stub/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Tasks          *handlers.TasksHandler
	Health         *handlers.HealthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires the stub's HTTP routes. Everything the real backend
// serves under /api is replicated here; fiber's default non-strict routing
// makes the historical trailing-slash variants land on the same handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Post("/auth/register", cfg.Auth.Register)
	api.Get("/auth/me", cfg.Auth.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/auth/user/change-password", cfg.Auth.ChangePassword)

	protected.Get("/auth/users", auth.RequireAdmin(), cfg.Users.List)
	protected.Get("/auth/users/:id", cfg.Users.Get)
	protected.Patch("/auth/users/:id", auth.RequireAdmin(), cfg.Users.Patch)
	protected.Delete("/auth/users/:id", auth.RequireAdmin(), cfg.Users.Delete)

	protected.Get("/projects", cfg.Projects.List)
	protected.Post("/projects", auth.RequireManager(), cfg.Projects.Create)
	protected.Get("/projects/:id", cfg.Projects.Get)
	protected.Put("/projects/:id", auth.RequireManager(), cfg.Projects.Update)
	protected.Delete("/projects/:id", auth.RequireManager(), cfg.Projects.Delete)

	protected.Get("/tasks", cfg.Tasks.List)
	protected.Post("/tasks", cfg.Tasks.Create)
	protected.Get("/tasks/:id", cfg.Tasks.Get)
	protected.Patch("/tasks/:id", cfg.Tasks.Patch)
	protected.Delete("/tasks/:id", cfg.Tasks.Delete)
}
