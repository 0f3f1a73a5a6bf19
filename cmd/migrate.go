package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationGateway/internal/config"
	"github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			return runMigrations(cmd.Context(), cfg, log)
		},
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName))
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(applied) == 0 {
		log.Info("Database schema is up to date")
		return nil
	}
	for _, name := range applied {
		log.Info("Applied migration %s", name)
	}
	return nil
}
