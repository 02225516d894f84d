package main

import (
	"github.com/BlackWidow29/Entrevista-Docket/pkg/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the identifier sequence and the registry and certificate tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		db, err := database.InitDB(&cfg.DB)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer database.Close(db) //nolint:errcheck

		if err := database.Migrate(cmd.Context(), db); err != nil {
			log.Error("Migration failed", zap.Error(err))
			return err
		}
		log.Info("Migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
