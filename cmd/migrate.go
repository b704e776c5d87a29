package cmd

import (
	"log"

	"gamedata-worker/core/config"
	"gamedata-worker/core/database"
	"gamedata-worker/core/queue"
	"gamedata-worker/feature/icons"
	"gamedata-worker/feature/items"
	"gamedata-worker/feature/revisions"
	"gamedata-worker/feature/skins"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// allModels lists every persisted model for schema migration.
func allModels() []any {
	return []any{
		&queue.Job{},
		&revisions.Build{},
		&revisions.Revision{},
		&icons.Icon{},
		&items.Item{},
		&items.ItemHistory{},
		&skins.Skin{},
		&skins.SkinHistory{},
	}
}

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := loggerFromConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		if err := database.Migrate(db, allModels()...); err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}

		logg.Info("Schema migrated")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
