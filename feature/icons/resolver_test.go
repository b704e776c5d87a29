package icons

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
	if err := db.AutoMigrate(&Icon{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestEnsure_CreatesIconOnce(t *testing.T) {
	db := setupTestDB(t, "icons_ensure")
	r := NewResolver()
	ctx := context.Background()

	url := "https://render.example.com/file/ABCDEF/63127.png"

	first, err := r.Ensure(ctx, db, url)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 63127, *first)

	// Second resolution of the same icon is a no-op and yields the same id.
	second, err := r.Ensure(ctx, db, url)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)

	var count int64
	db.Model(&Icon{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var icon Icon
	require.NoError(t, db.First(&icon, 63127).Error)
	assert.Equal(t, "ABCDEF", icon.Signature)
}

func TestEnsure_NoIcon(t *testing.T) {
	db := setupTestDB(t, "icons_ensure_none")
	r := NewResolver()

	id, err := r.Ensure(context.Background(), db, "")
	require.NoError(t, err)
	assert.Nil(t, id)

	var count int64
	db.Model(&Icon{}).Count(&count)
	assert.Zero(t, count)
}
