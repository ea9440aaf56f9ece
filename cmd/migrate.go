package cmd

import (
	"fmt"
	"log"

	"github.com/junaidrashid-git/bookmarket-api/config"
	"github.com/junaidrashid-git/bookmarket-api/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		return database.Close(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// openStore connects to the configured database and brings the schema up to date.
func openStore(cfg *config.Config) (*gorm.DB, error) {
	log.Printf("🔌 Connecting to %s database...", cfg.Database.Driver)
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
