package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/config"
	"github.com/tasker-hq/tasker-go/internal/observability"
	"github.com/tasker-hq/tasker-go/internal/persistence"
	"github.com/tasker-hq/tasker-go/internal/stub"
)

func serveCmd() *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local stub of the Tasker API",
		Long: `Run a local HTTP server that mimics the Tasker backend for
development and testing. Stores data in memory by default, or in
Postgres when STUB_POSTGRES_DSN is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			pg, err := persistence.NewPostgres(ctx, cfg.Stub, logger)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pg.Close()

			if pg.PoolHandle() != nil && cfg.Stub.RunMigrations {
				if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
			}

			srv := stub.New(cfg.Stub, logger, pg)

			if !noSeed {
				if err := stub.SeedDemoData(ctx, srv.Repositories(), cfg.Stub.BcryptCost, logger); err != nil {
					return fmt.Errorf("seed demo data: %w", err)
				}
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("shutting down", zap.String("signal", sig.String()))
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip creating demo accounts and data")
	return cmd
}
