package items

import (
	"context"

	"gamedata-worker/core/queue"
	"gamedata-worker/core/reconcile"
	"gamedata-worker/core/worker"
	"gamedata-worker/feature/revisions"

	"gorm.io/gorm"
)

// Job types handled by the items feature.
const (
	JobNew          queue.JobType = "items.new"
	JobUpdated      queue.JobType = "items.updated"
	JobRediscovered queue.JobType = "items.rediscovered"
	JobRemoved      queue.JobType = "items.removed"
	JobDiscover     queue.JobType = "items.discover"
)

// Handlers returns the job handlers for items.
func Handlers(db *gorm.DB, engine *reconcile.Engine, discoverer *reconcile.Discoverer) []worker.Handler {
	adapter := NewAdapter()

	return []worker.Handler{
		worker.HandlerFunc(JobNew, func(ctx context.Context, ids []int) (string, error) {
			build, err := revisions.CurrentBuild(ctx, db)
			if err != nil {
				return "", err
			}
			summary, err := engine.Added(ctx, adapter, build.ID, ids)
			if err != nil {
				return "", err
			}
			return summary.Result("Added", "items"), summary.Err()
		}),

		worker.HandlerFunc(JobUpdated, func(ctx context.Context, ids []int) (string, error) {
			build, err := revisions.CurrentBuild(ctx, db)
			if err != nil {
				return "", err
			}
			summary, err := engine.Updated(ctx, adapter, build.ID, ids)
			if err != nil {
				return "", err
			}
			return summary.Result("Updated", "items"), summary.Err()
		}),

		worker.HandlerFunc(JobRediscovered, func(ctx context.Context, ids []int) (string, error) {
			build, err := revisions.CurrentBuild(ctx, db)
			if err != nil {
				return "", err
			}
			summary, err := engine.Rediscovered(ctx, adapter, build.ID, ids)
			if err != nil {
				return "", err
			}
			return summary.Result("Rediscovered", "items"), summary.Err()
		}),

		worker.HandlerFunc(JobRemoved, func(ctx context.Context, ids []int) (string, error) {
			summary, err := engine.Removed(ctx, adapter, ids)
			if err != nil {
				return "", err
			}
			return summary.Result("Removed", "items"), summary.Err()
		}),

		worker.HandlerFunc(JobDiscover, func(ctx context.Context, _ []int) (string, error) {
			return discoverer.Discover(ctx, adapter, adapter, reconcile.DiscoverJobs{
				New:          JobNew,
				Rediscovered: JobRediscovered,
				Removed:      JobRemoved,
			})
		}),
	}
}
