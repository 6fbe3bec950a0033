package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/api"
	"github.com/tasker-hq/tasker-go/internal/config"
	"github.com/tasker-hq/tasker-go/internal/observability"
	"github.com/tasker-hq/tasker-go/internal/persistence"
	"github.com/tasker-hq/tasker-go/internal/session"
	"github.com/tasker-hq/tasker-go/internal/token"
	"github.com/tasker-hq/tasker-go/internal/tokenstore"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasker",
		Short: "Command line client for the Tasker API",
		Long: `tasker talks to a Tasker backend: log in, inspect your session,
and manage projects, tasks and users from the terminal.

Configuration comes from the environment (a .env file is honored):
  TASKER_API_URL        backend base URL (default http://localhost:3000/api)
  TASKER_STORE_BACKEND  token store: file, redis, memory, disabled
  TASKER_STORE_PATH     credentials file for the file backend`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		registerCmd(),
		whoamiCmd(),
		projectsCmd(),
		tasksCmd(),
		usersCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// app bundles the pieces every client-side command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   tokenstore.Store
	client  *api.Client
	session *session.Manager

	closers []func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	a.store, err = a.newStore()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.client = api.New(cfg.Client.BaseURL, a.store, logger,
		api.WithTimeout(cfg.Client.Timeout()))

	a.session = session.NewManager(a.store, token.NewCodec(logger), logger)
	a.session.Start()
	a.closers = append(a.closers, a.session.Stop)

	return a, nil
}

func (a *app) newStore() (tokenstore.Store, error) {
	switch a.cfg.Store.Backend {
	case config.StoreBackendMemory:
		return tokenstore.NewMemoryStore(), nil
	case config.StoreBackendDisabled:
		return tokenstore.NewDisabledStore(), nil
	case config.StoreBackendRedis:
		rd := persistence.NewRedis(a.cfg.Redis, a.logger)
		a.closers = append(a.closers, rd.Close)
		store := tokenstore.NewRedisStore(rd.Client, a.logger)
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.StoreBackendFile:
		return tokenstore.NewFileStore(a.cfg.Store.Path, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
