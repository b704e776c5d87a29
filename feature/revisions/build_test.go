package revisions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Build{}, &Revision{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestCurrentBuild_CreatesSentinel(t *testing.T) {
	db := setupTestDB(t, "builds_sentinel")
	ctx := context.Background()

	build, err := CurrentBuild(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, SentinelBuildID, build.ID)

	// The sentinel is persisted, not synthesized per call.
	var count int64
	db.Model(&Build{}).Count(&count)
	assert.Equal(t, int64(1), count)

	again, err := CurrentBuild(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, SentinelBuildID, again.ID)
	db.Model(&Build{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordBuild_Monotonic(t *testing.T) {
	db := setupTestDB(t, "builds_monotonic")
	ctx := context.Background()

	created, err := RecordBuild(ctx, db, 100)
	require.NoError(t, err)
	assert.True(t, created)

	current, err := CurrentBuild(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 100, current.ID)

	// Same build again is a no-op.
	created, err = RecordBuild(ctx, db, 100)
	require.NoError(t, err)
	assert.False(t, created)

	// Older builds are ignored.
	created, err = RecordBuild(ctx, db, 99)
	require.NoError(t, err)
	assert.False(t, created)

	// Newer builds advance the current build.
	created, err = RecordBuild(ctx, db, 101)
	require.NoError(t, err)
	assert.True(t, created)

	current, err = CurrentBuild(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 101, current.ID)
}

func TestRecordBuild_RejectsInvalidID(t *testing.T) {
	db := setupTestDB(t, "builds_invalid")

	_, err := RecordBuild(context.Background(), db, 0)
	assert.Error(t, err)

	_, err = RecordBuild(context.Background(), db, -5)
	assert.Error(t, err)
}
