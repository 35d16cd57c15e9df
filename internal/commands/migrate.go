package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mconstantine/cooler-sub002/internal/config"
	"github.com/mconstantine/cooler-sub002/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		log.Printf("migrations applied to %s", cfg.DBPath)
		return nil
	},
}
