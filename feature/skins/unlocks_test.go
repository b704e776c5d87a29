package skins

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gamedata-worker/feature/gw2api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Skin{}, &SkinHistory{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type fakeUnlockSource struct {
	stats *gw2api.UnlockStats
	err   error
}

func (f fakeUnlockSource) Unlocks(ctx context.Context, statsID string) (*gw2api.UnlockStats, error) {
	return f.stats, f.err
}

func TestRefreshUnlocks(t *testing.T) {
	db := setupTestDB(t, "skins_unlocks")
	ctx := context.Background()

	require.NoError(t, db.Create(&Skin{ID: 5, NameEn: "Zodiac Shield"}).Error)
	require.NoError(t, db.Create(&Skin{ID: 7, NameEn: "Fused Sword"}).Error)

	source := fakeUnlockSource{stats: &gw2api.UnlockStats{
		Total:     100,
		UpdatedAt: "2026-08-28T12:00:00Z",
		Data: map[string]int{
			"5":   10,
			"7":   0,
			"999": 50, // unknown to this database
		},
	}}

	result, err := RefreshUnlocks(ctx, db, source, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Updated 2/3 skin unlocks", result)

	var shield Skin
	require.NoError(t, db.First(&shield, 5).Error)
	require.NotNil(t, shield.Unlocks)
	assert.InDelta(t, 0.1, *shield.Unlocks, 1e-9)
	require.NotNil(t, shield.UnlocksUpdatedAt)
	assert.Equal(t, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), shield.UnlocksUpdatedAt.UTC())

	var sword Skin
	require.NoError(t, db.First(&sword, 7).Error)
	require.NotNil(t, sword.Unlocks)
	assert.Zero(t, *sword.Unlocks)
}

func TestRefreshUnlocks_SkipsNonNumericKeys(t *testing.T) {
	db := setupTestDB(t, "skins_unlocks_keys")

	require.NoError(t, db.Create(&Skin{ID: 5}).Error)

	source := fakeUnlockSource{stats: &gw2api.UnlockStats{
		Total: 100,
		Data: map[string]int{
			"5":     10,
			"bogus": 20,
			"007":   30, // non-canonical numeric form
		},
	}}

	result, err := RefreshUnlocks(context.Background(), db, source, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Updated 1/1 skin unlocks", result)
}

func TestRefreshUnlocks_SourceError(t *testing.T) {
	db := setupTestDB(t, "skins_unlocks_err")

	source := fakeUnlockSource{err: gw2api.ErrSourceUnavailable}
	_, err := RefreshUnlocks(context.Background(), db, source, zap.NewNop())
	assert.ErrorIs(t, err, gw2api.ErrSourceUnavailable)
}
