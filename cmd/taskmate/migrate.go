package main

import (
	"context"
	"fmt"

	"github.com/Varun5711/taskmate/internal/config"
	"github.com/Varun5711/taskmate/internal/database"
	"github.com/Varun5711/taskmate/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", database.MigrateUp),
		migrateSubcommand("down", "Roll back the most recent migration", database.MigrateDown),
		migrateSubcommand("status", "Show applied and pending migrations", database.MigrationStatus),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(context.Context, *pgxpool.Pool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("migrate")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.PrimaryDSN == "" {
				return fmt.Errorf("DB_PRIMARY_DSN is required")
			}

			ctx := cmd.Context()
			db, err := database.NewDBManager(ctx, database.Config{PrimaryDSN: cfg.Database.PrimaryDSN, MaxConns: 2})
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			database.SetLogger(log)
			if err := run(ctx, db.Write()); err != nil {
				return err
			}

			version, err := database.MigrationVersion(ctx, db.Write())
			if err != nil {
				return err
			}
			log.Info("Schema at version %d", version)
			return nil
		},
	}
}
