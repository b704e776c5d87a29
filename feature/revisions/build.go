package revisions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CurrentBuild returns the most recently recorded build. When no build has
// been observed yet it creates and returns the sentinel build 0, so revisions
// written before the first build.update job still reference a real row.
//
// The result is threaded explicitly into reconciler operations instead of
// being looked up ambiently, so tests can inject build fixtures.
func CurrentBuild(ctx context.Context, db *gorm.DB) (*Build, error) {
	var build Build
	err := db.WithContext(ctx).Order("id desc").First(&build).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		build = Build{ID: SentinelBuildID}
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&build).Error; err != nil {
			return nil, fmt.Errorf("failed to create sentinel build: %w", err)
		}
		return &build, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load current build: %w", err)
	}

	return &build, nil
}

// RecordBuild inserts a newly observed game build. Build ids are monotonic;
// an id that is not newer than the current build is ignored. Returns whether
// a row was created.
func RecordBuild(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	if id <= SentinelBuildID {
		return false, fmt.Errorf("invalid build id %d", id)
	}

	current, err := CurrentBuild(ctx, db)
	if err != nil {
		return false, err
	}
	if id <= current.ID {
		return false, nil
	}

	build := Build{ID: id}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&build)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record build %d: %w", id, result.Error)
	}

	return result.RowsAffected > 0, nil
}
