package items

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gamedata-worker/core/reconcile"
	"gamedata-worker/feature/gw2api"
	"gamedata-worker/feature/revisions"

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
	if err := db.AutoMigrate(&revisions.Build{}, &revisions.Revision{}, &Item{}, &ItemHistory{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func itemData(id int, name string) gw2api.LocalizedEntity {
	data := make(gw2api.LocalizedEntity, len(gw2api.Languages))
	for _, lang := range gw2api.Languages {
		data[lang] = gw2api.Entity{
			ID:          id,
			Name:        fmt.Sprintf("%s (%s)", name, lang),
			Rarity:      "Exotic",
			Type:        "Weapon",
			Details:     gw2api.EntityDetails{Type: "Sword"},
			VendorValue: 264,
			Level:       80,
			Raw:         []byte(fmt.Sprintf(`{"id":%d}`, id)),
		}
	}
	return data
}

func writeRevisions(t *testing.T, db *gorm.DB, changeType revisions.ChangeType) map[gw2api.Language]revisions.Revision {
	t.Helper()
	payloads := make(map[gw2api.Language]string, len(gw2api.Languages))
	for _, lang := range gw2api.Languages {
		payloads[lang] = fmt.Sprintf(`{"lang":"%s"}`, lang)
	}
	revs, err := revisions.Create(context.Background(), db, Kind, revisions.SentinelBuildID, changeType, "Added to API", payloads)
	require.NoError(t, err)
	return revs
}

func TestAdapter_CreateAndHistory(t *testing.T) {
	db := setupTestDB(t, "items_create")
	ctx := context.Background()
	adapter := NewAdapter()

	revs := writeRevisions(t, db, revisions.ChangeAdded)
	iconID := 42

	require.NoError(t, adapter.Create(ctx, db, itemData(100, "Bolt"), &iconID, revs))

	exists, err := adapter.Exists(ctx, db, 100)
	require.NoError(t, err)
	assert.True(t, exists)

	var item Item
	require.NoError(t, db.First(&item, 100).Error)
	assert.Equal(t, "Bolt (en)", item.NameEn)
	assert.Equal(t, "Bolt (de)", item.NameDe)
	assert.Equal(t, "Exotic", item.Rarity)
	assert.Equal(t, "Sword", item.Subtype)
	assert.Equal(t, 264, item.Value)
	assert.Equal(t, 80, item.Level)
	assert.Equal(t, CurrentVersion, item.Version)
	require.NotNil(t, item.CurrentEnID)
	assert.Equal(t, revs[gw2api.LanguageEn].ID, *item.CurrentEnID)
	require.NotNil(t, item.CurrentFrID)
	assert.Equal(t, revs[gw2api.LanguageFr].ID, *item.CurrentFrID)

	var history []ItemHistory
	require.NoError(t, db.Where("item_id = ?", 100).Find(&history).Error)
	assert.Len(t, history, len(gw2api.Languages))
}

func TestAdapter_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t, "items_create_dup")
	ctx := context.Background()
	adapter := NewAdapter()

	revs := writeRevisions(t, db, revisions.ChangeAdded)
	require.NoError(t, adapter.Create(ctx, db, itemData(100, "Bolt"), nil, revs))

	err := adapter.Create(ctx, db, itemData(100, "Bolt"), nil, revs)
	assert.ErrorIs(t, err, reconcile.ErrDuplicateEntity)
}

func TestAdapter_ApplyBumpsVersionAndAppendsHistory(t *testing.T) {
	db := setupTestDB(t, "items_apply")
	ctx := context.Background()
	adapter := NewAdapter()

	created := writeRevisions(t, db, revisions.ChangeAdded)
	require.NoError(t, adapter.Create(ctx, db, itemData(100, "Bolt"), nil, created))

	updated := writeRevisions(t, db, revisions.ChangeUpdate)
	found, err := adapter.Apply(ctx, db, 100, itemData(100, "Bolt Reforged"), nil, updated, false)
	require.NoError(t, err)
	assert.True(t, found)

	var item Item
	require.NoError(t, db.First(&item, 100).Error)
	assert.Equal(t, "Bolt Reforged (en)", item.NameEn)
	assert.Equal(t, CurrentVersion+1, item.Version)
	assert.Equal(t, updated[gw2api.LanguageEn].ID, *item.CurrentEnID)

	var historyCount int64
	db.Model(&ItemHistory{}).Where("item_id = ?", 100).Count(&historyCount)
	assert.Equal(t, int64(2*len(gw2api.Languages)), historyCount)
}

func TestAdapter_ApplyMissingRow(t *testing.T) {
	db := setupTestDB(t, "items_apply_missing")
	adapter := NewAdapter()

	revs := writeRevisions(t, db, revisions.ChangeUpdate)
	found, err := adapter.Apply(context.Background(), db, 999, itemData(999, "Ghost"), nil, revs, false)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAdapter_RediscoverClearsRemovedFlag(t *testing.T) {
	db := setupTestDB(t, "items_rediscover")
	ctx := context.Background()
	adapter := NewAdapter()

	created := writeRevisions(t, db, revisions.ChangeAdded)
	require.NoError(t, adapter.Create(ctx, db, itemData(100, "Bolt"), nil, created))

	found, err := adapter.MarkRemoved(ctx, db, 100, time.Now())
	require.NoError(t, err)
	assert.True(t, found)

	var item Item
	require.NoError(t, db.First(&item, 100).Error)
	assert.True(t, item.RemovedFromAPI)

	redisc := writeRevisions(t, db, revisions.ChangeRediscovered)
	found, err = adapter.Apply(ctx, db, 100, itemData(100, "Bolt"), nil, redisc, true)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, db.First(&item, 100).Error)
	assert.False(t, item.RemovedFromAPI)
}

func TestAdapter_KnownIDs(t *testing.T) {
	db := setupTestDB(t, "items_known")
	ctx := context.Background()
	adapter := NewAdapter()

	revs := writeRevisions(t, db, revisions.ChangeAdded)
	require.NoError(t, adapter.Create(ctx, db, itemData(100, "Bolt"), nil, revs))
	require.NoError(t, adapter.Create(ctx, db, itemData(101, "Sunrise"), nil, revs))

	_, err := adapter.MarkRemoved(ctx, db, 101, time.Now())
	require.NoError(t, err)

	known, err := adapter.KnownIDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{100: false, 101: true}, known)
}
