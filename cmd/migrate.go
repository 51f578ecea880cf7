package cmd

import (
	"log"
	"os"

	"github.com/profilehub/profile-hub/config"
	"github.com/profilehub/profile-hub/database"

	"github.com/spf13/cobra"
)

// migrateCmd applies the database schema and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		if err := os.MkdirAll("./data", os.ModePerm); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}

		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		log.Println("Database schema is up to date.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
