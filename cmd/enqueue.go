package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gamedata-worker/core/config"
	"gamedata-worker/core/database"
	"gamedata-worker/core/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	enqueueIDs      string
	enqueuePriority int
)

// enqueueCmd represents the enqueue command
var enqueueCmd = &cobra.Command{
	Use:   "enqueue <job-type>",
	Short: "Submit a job to the queue",
	Long: `Enqueues a job of the given type. Id lists longer than the batch cap are
split into multiple independent jobs.

Examples:
  gamedata-worker enqueue items.new --ids 123,456
  gamedata-worker enqueue skins.unlocks
  gamedata-worker enqueue items.discover --priority 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		jobType := queue.JobType(args[0])
		ctx := context.Background()

		if enqueueIDs == "" {
			job, err := queue.EnqueueBare(ctx, db, jobType, enqueuePriority)
			if err != nil {
				return err
			}
			logg.Info("Enqueued job", zap.String("job_id", job.ID), zap.String("type", args[0]))
			return nil
		}

		ids, err := parseIDs(enqueueIDs)
		if err != nil {
			return err
		}

		jobs, err := queue.Enqueue(ctx, db, jobType, ids, enqueuePriority)
		if err != nil {
			return err
		}

		logg.Info("Enqueued jobs",
			zap.String("type", args[0]),
			zap.Int("jobs", len(jobs)),
			zap.Int("ids", len(ids)),
		)
		return nil
	},
}

func parseIDs(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	enqueueCmd.Flags().StringVar(&enqueueIDs, "ids", "", "comma-separated entity ids")
	enqueueCmd.Flags().IntVar(&enqueuePriority, "priority", queue.DefaultPriority, "job priority (lower runs first)")
	RootCmd.AddCommand(enqueueCmd)
}
