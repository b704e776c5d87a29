package revisions

import (
	"context"
	"fmt"

	"gamedata-worker/core/queue"
	"gamedata-worker/core/worker"

	"gorm.io/gorm"
)

// JobBuildUpdate records newly observed game builds.
const JobBuildUpdate queue.JobType = "build.update"

// BuildSource fetches the current game build id. Implemented by
// gw2api.Client.
type BuildSource interface {
	Build(ctx context.Context) (int, error)
}

// BuildUpdateHandler returns the handler for the build.update job.
func BuildUpdateHandler(db *gorm.DB, source BuildSource) worker.Handler {
	return worker.HandlerFunc(JobBuildUpdate, func(ctx context.Context, _ []int) (string, error) {
		id, err := source.Build(ctx)
		if err != nil {
			return "", err
		}

		created, err := RecordBuild(ctx, db, id)
		if err != nil {
			return "", err
		}

		if created {
			return fmt.Sprintf("Recorded new build %d", id), nil
		}
		return fmt.Sprintf("Build %d already known", id), nil
	})
}
