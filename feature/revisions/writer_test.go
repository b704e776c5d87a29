package revisions

import (
	"context"
	"testing"

	"gamedata-worker/feature/gw2api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_OneRevisionPerLanguage(t *testing.T) {
	db := setupTestDB(t, "revisions_create")
	ctx := context.Background()

	payloads := map[gw2api.Language]string{
		gw2api.LanguageDe: `{"id":1,"name":"Schwert"}`,
		gw2api.LanguageEn: `{"id":1,"name":"Sword"}`,
		gw2api.LanguageEs: `{"id":1,"name":"Espada"}`,
		gw2api.LanguageFr: `{"id":1,"name":"Epee"}`,
	}

	created, err := Create(ctx, db, "Item", 100, ChangeAdded, "Added to API", payloads)
	require.NoError(t, err)
	require.Len(t, created, len(gw2api.Languages))

	for lang, rev := range created {
		assert.NotZero(t, rev.ID)
		assert.Equal(t, payloads[lang], rev.Data)
		assert.Equal(t, "Item", rev.Entity)
		assert.Equal(t, lang, rev.Language)
		assert.Equal(t, ChangeAdded, rev.Type)
		assert.Equal(t, 100, rev.BuildID)
		assert.Equal(t, "Added to API", rev.Description)
	}

	var count int64
	db.Model(&Revision{}).Count(&count)
	assert.Equal(t, int64(len(gw2api.Languages)), count)
}

func TestCreate_SkipsMissingLanguages(t *testing.T) {
	db := setupTestDB(t, "revisions_partial")

	created, err := Create(context.Background(), db, "Skin", 100, ChangeUpdate, "Updated in API", map[gw2api.Language]string{
		gw2api.LanguageEn: `{"id":2}`,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Contains(t, created, gw2api.LanguageEn)
}
