// Package stub runs a local replica of the Tasker REST API so the CLI and
// SDK can be exercised without the real backend. It issues genuine HS256
// token pairs and replicates the endpoint surface the client consumes.
package stub

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/auth"
	"github.com/tasker-hq/tasker-go/internal/config"
	"github.com/tasker-hq/tasker-go/internal/observability"
	"github.com/tasker-hq/tasker-go/internal/persistence"
	"github.com/tasker-hq/tasker-go/internal/stub/handlers"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
)

// Repositories groups the storage backends behind the stub.
type Repositories struct {
	Users    repository.UserRepository
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
}

// NewRepositories picks Postgres-backed repositories when a pool exists and
// in-memory ones otherwise.
func NewRepositories(pg *persistence.Postgres) Repositories {
	if pool := pg.PoolHandle(); pool != nil {
		return Repositories{
			Users:    repository.NewPostgresUserRepository(pool),
			Projects: repository.NewPostgresProjectRepository(pool),
			Tasks:    repository.NewPostgresTaskRepository(pool),
		}
	}
	return Repositories{
		Users:    repository.NewMemoryUserRepository(),
		Projects: repository.NewMemoryProjectRepository(),
		Tasks:    repository.NewMemoryTaskRepository(),
	}
}

// Server is the assembled stub API.
type Server struct {
	app    *fiber.App
	cfg    config.StubConfig
	logger *zap.Logger
	repos  Repositories
}

// New assembles the fiber app with all routes and middleware attached.
func New(cfg config.StubConfig, logger *zap.Logger, pg *persistence.Postgres) *Server {
	repos := NewRepositories(pg)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, metrics)
	RegisterRoutes(app, RouteConfig{
		Auth:           handlers.NewAuthHandler(repos.Users, tokens, cfg.BcryptCost),
		Users:          handlers.NewUsersHandler(repos.Users),
		Projects:       handlers.NewProjectsHandler(repos.Projects),
		Tasks:          handlers.NewTasksHandler(repos.Tasks, repos.Users, repos.Projects),
		Health:         handlers.NewHealthHandler("tasker-stub", pg, metrics),
		AuthMiddleware: auth.NewMiddleware(tokens),
	})

	return &Server{app: app, cfg: cfg, logger: logger, repos: repos}
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Repositories exposes the storage backends, mainly for seeding.
func (s *Server) Repositories() Repositories {
	return s.repos
}

// Listen blocks serving the configured address.
func (s *Server) Listen() error {
	s.logger.Info("stub api listening", zap.String("addr", s.cfg.Addr()))
	return s.app.Listen(s.cfg.Addr())
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
