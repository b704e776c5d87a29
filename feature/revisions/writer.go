package revisions

import (
	"context"
	"fmt"

	"gamedata-worker/feature/gw2api"

	"gorm.io/gorm"
)

// Create writes one revision per provided language, all tagged with the same
// build, change type and description, and returns the created rows keyed by
// language.
//
// This is the only operation on revisions; there is no update or delete.
func Create(ctx context.Context, db *gorm.DB, kind string, buildID int, changeType ChangeType, description string, payloads map[gw2api.Language]string) (map[gw2api.Language]Revision, error) {
	created := make(map[gw2api.Language]Revision, len(payloads))

	for _, lang := range gw2api.Languages {
		payload, ok := payloads[lang]
		if !ok {
			continue
		}

		revision := Revision{
			Data:        payload,
			Description: description,
			Entity:      kind,
			Language:    lang,
			Type:        changeType,
			BuildID:     buildID,
		}

		if err := db.WithContext(ctx).Create(&revision).Error; err != nil {
			return nil, fmt.Errorf("failed to create %s revision for %s: %w", kind, lang, err)
		}

		created[lang] = revision
	}

	return created, nil
}
