package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"gamedata-worker/core/config"
	"gamedata-worker/core/database"
	"gamedata-worker/core/logger"
	"gamedata-worker/core/reconcile"
	"gamedata-worker/core/server"
	"gamedata-worker/core/storage"
	"gamedata-worker/core/worker"

	"gamedata-worker/feature/gw2api"
	"gamedata-worker/feature/icons"
	"gamedata-worker/feature/items"
	"gamedata-worker/feature/revisions"
	"gamedata-worker/feature/skins"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func loggerFromConfig(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(&cfg.Log)
}

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the job worker",
	Long:  `Starts the job processing loop and the status HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := loggerFromConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db, allModels()...); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Build the pipeline
		api := gw2api.NewClient(cfg.API)
		engine := reconcile.NewEngine(db, api, icons.NewResolver(), logg)
		discoverer := reconcile.NewDiscoverer(db, api, logg)

		w := worker.New(db, cfg.Worker, logg)
		w.Register(items.Handlers(db, engine, discoverer)...)
		w.Register(skins.Handlers(db, engine, discoverer, api, logg)...)
		w.Register(revisions.BuildUpdateHandler(db, api))

		// 5. Icon mirror (optional)
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(cmd.Context(), store, cfg.Storage); err != nil {
				logg.Fatal("Failed to prepare icon bucket", zap.Error(err))
			}
			w.Register(icons.NewMirror(db, store, cfg.Storage.Bucket, cfg.API.IconCDNURL, cfg.Storage.TimeoutSeconds, logg))
		}

		// 6. Status server
		app := server.New(db, logg)
		go func() {
			logg.Info("Starting status server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Status server failed to start", zap.Error(err))
			}
		}()

		// 7. Run until interrupted
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w.Run(ctx)

		logg.Info("Shutting down status server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(workerCmd)
}
