package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamedata-worker/core/reconcile"
	"gamedata-worker/feature/gw2api"
	"gamedata-worker/feature/revisions"

	"gorm.io/gorm"
)

// Adapter implements reconcile.Adapter and reconcile.Inventory for items.
type Adapter struct{}

// NewAdapter creates the item adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Kind implements reconcile.Adapter.
func (a *Adapter) Kind() string { return Kind }

// Endpoint implements reconcile.Adapter.
func (a *Adapter) Endpoint() string { return Endpoint }

// Exists implements reconcile.Adapter.
func (a *Adapter) Exists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&Item{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check item %d: %w", id, err)
	}
	return count > 0, nil
}

// Create implements reconcile.Adapter.
func (a *Adapter) Create(ctx context.Context, db *gorm.DB, data gw2api.LocalizedEntity, iconID *int, revs map[gw2api.Language]revisions.Revision) error {
	en := data[gw2api.LanguageEn]

	item := Item{
		ID:            en.ID,
		NameDe:        data[gw2api.LanguageDe].Name,
		NameEn:        en.Name,
		NameEs:        data[gw2api.LanguageEs].Name,
		NameFr:        data[gw2api.LanguageFr].Name,
		IconID:        iconID,
		Rarity:        en.Rarity,
		Type:          en.Type,
		Subtype:       en.Details.Type,
		Weight:        en.Details.WeightClass,
		Value:         en.VendorValue,
		Level:         en.Level,
		Version:       CurrentVersion,
		CurrentDeID:   revisionID(revs, gw2api.LanguageDe),
		CurrentEnID:   revisionID(revs, gw2api.LanguageEn),
		CurrentEsID:   revisionID(revs, gw2api.LanguageEs),
		CurrentFrID:   revisionID(revs, gw2api.LanguageFr),
		LastCheckedAt: time.Now(),
	}

	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("item %d: %w", en.ID, reconcile.ErrDuplicateEntity)
		}
		return fmt.Errorf("failed to create item %d: %w", en.ID, err)
	}

	return appendHistory(ctx, db, en.ID, revs)
}

// Apply implements reconcile.Adapter.
func (a *Adapter) Apply(ctx context.Context, db *gorm.DB, id int, data gw2api.LocalizedEntity, iconID *int, revs map[gw2api.Language]revisions.Revision, rediscovered bool) (bool, error) {
	en := data[gw2api.LanguageEn]

	updates := map[string]any{
		"name_de":         data[gw2api.LanguageDe].Name,
		"name_en":         en.Name,
		"name_es":         data[gw2api.LanguageEs].Name,
		"name_fr":         data[gw2api.LanguageFr].Name,
		"icon_id":         iconID,
		"rarity":          en.Rarity,
		"type":            en.Type,
		"subtype":         en.Details.Type,
		"weight":          en.Details.WeightClass,
		"value":           en.VendorValue,
		"level":           en.Level,
		"version":         gorm.Expr("version + 1"),
		"current_de_id":   revisionID(revs, gw2api.LanguageDe),
		"current_en_id":   revisionID(revs, gw2api.LanguageEn),
		"current_es_id":   revisionID(revs, gw2api.LanguageEs),
		"current_fr_id":   revisionID(revs, gw2api.LanguageFr),
		"last_checked_at": time.Now(),
	}
	if rediscovered {
		updates["removed_from_api"] = false
	}

	result := db.WithContext(ctx).Model(&Item{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := appendHistory(ctx, db, id, revs); err != nil {
		return true, err
	}

	return true, nil
}

// MarkRemoved implements reconcile.Adapter.
func (a *Adapter) MarkRemoved(ctx context.Context, db *gorm.DB, id int, now time.Time) (bool, error) {
	result := db.WithContext(ctx).Model(&Item{}).Where("id = ?", id).
		Updates(map[string]any{"removed_from_api": true, "last_checked_at": now})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark item %d removed: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// KnownIDs implements reconcile.Inventory.
func (a *Adapter) KnownIDs(ctx context.Context, db *gorm.DB) (map[int]bool, error) {
	var rows []struct {
		ID             int
		RemovedFromAPI bool `gorm:"column:removed_from_api"`
	}

	err := db.WithContext(ctx).Model(&Item{}).Select("id, removed_from_api").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}

	known := make(map[int]bool, len(rows))
	for _, row := range rows {
		known[row.ID] = row.RemovedFromAPI
	}

	return known, nil
}

func appendHistory(ctx context.Context, db *gorm.DB, id int, revs map[gw2api.Language]revisions.Revision) error {
	history := make([]ItemHistory, 0, len(revs))
	for _, lang := range gw2api.Languages {
		rev, ok := revs[lang]
		if !ok {
			continue
		}
		history = append(history, ItemHistory{ItemID: id, RevisionID: rev.ID})
	}

	if len(history) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).Create(&history).Error; err != nil {
		return fmt.Errorf("failed to append item %d history: %w", id, err)
	}

	return nil
}

func revisionID(revs map[gw2api.Language]revisions.Revision, lang gw2api.Language) *int64 {
	rev, ok := revs[lang]
	if !ok {
		return nil
	}
	id := rev.ID
	return &id
}
