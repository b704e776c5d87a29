package skins

import (
	"context"

	"gamedata-worker/core/queue"
	"gamedata-worker/core/reconcile"
	"gamedata-worker/core/worker"
	"gamedata-worker/feature/revisions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Job types handled by the skins feature.
const (
	JobNew          queue.JobType = "skins.new"
	JobUpdated      queue.JobType = "skins.updated"
	JobRediscovered queue.JobType = "skins.rediscovered"
	JobRemoved      queue.JobType = "skins.removed"
	JobDiscover     queue.JobType = "skins.discover"
	JobUnlocks      queue.JobType = "skins.unlocks"
)

// Handlers returns the job handlers for skins.
func Handlers(db *gorm.DB, engine *reconcile.Engine, discoverer *reconcile.Discoverer, unlocks UnlockSource, logger *zap.Logger) []worker.Handler {
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
			return summary.Result("Added", "skins"), summary.Err()
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
			return summary.Result("Updated", "skins"), summary.Err()
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
			return summary.Result("Rediscovered", "skins"), summary.Err()
		}),

		worker.HandlerFunc(JobRemoved, func(ctx context.Context, ids []int) (string, error) {
			summary, err := engine.Removed(ctx, adapter, ids)
			if err != nil {
				return "", err
			}
			return summary.Result("Removed", "skins"), summary.Err()
		}),

		worker.HandlerFunc(JobDiscover, func(ctx context.Context, _ []int) (string, error) {
			return discoverer.Discover(ctx, adapter, adapter, reconcile.DiscoverJobs{
				New:          JobNew,
				Rediscovered: JobRediscovered,
				Removed:      JobRemoved,
			})
		}),

		worker.HandlerFunc(JobUnlocks, func(ctx context.Context, _ []int) (string, error) {
			return RefreshUnlocks(ctx, db, unlocks, logger)
		}),
	}
}
