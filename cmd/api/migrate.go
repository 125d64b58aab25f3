package main

import (
	"github.com/spf13/cobra"

	"hellodemo/internal/database"
	"hellodemo/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create temp_table if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log := loadConfig()

		db, err := database.Open(cfg.Database)
		if err != nil {
			log.WithError(err).Error("db_connect_failed")
			return logged(err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(cmd.Context(), db, cfg.Database.Driver, log, cfg.Database.Host); err != nil {
			log.WithError(err).Error("migrate_failed")
			return logged(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
