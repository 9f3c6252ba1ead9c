package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/barbershop-reservation/internal/infra/storage/migrations"
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
	"github.com/m04kA/barbershop-reservation/pkg/txmanager"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			wrappedDB := dbmetrics.Wrap(db, nil)
			migrator := migrations.NewMigrator(wrappedDB, txmanager.NewTransactionManager(wrappedDB), log)

			applied, err := migrator.Up(cmd.Context())
			if err != nil {
				return err
			}

			log.Info("Migrations applied: %d %v", len(applied), applied)
			return nil
		},
	}
}
