package skins

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gamedata-worker/feature/gw2api"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnlockSource fetches aggregate unlock statistics. Implemented by
// gw2api.Client.
type UnlockSource interface {
	Unlocks(ctx context.Context, statsID string) (*gw2api.UnlockStats, error)
}

// RefreshUnlocks fetches the aggregate unlock counts, normalizes each to a
// fraction of the total and applies all of them in one transaction. Ids
// unknown to this database are silently ignored, the aggregate tracks skins
// we may not have observed yet.
func RefreshUnlocks(ctx context.Context, db *gorm.DB, source UnlockSource, logger *zap.Logger) (string, error) {
	stats, err := source.Unlocks(ctx, UnlockStatsID)
	if err != nil {
		return "", err
	}

	type unlockUpdate struct {
		id       int
		fraction float64
	}

	updates := make([]unlockUpdate, 0, len(stats.Data))
	for idString, count := range stats.Data {
		id, err := strconv.Atoi(idString)
		if err != nil || strconv.Itoa(id) != idString {
			continue
		}
		updates = append(updates, unlockUpdate{id: id, fraction: float64(count) / float64(stats.Total)})
	}

	var updatedAt *time.Time
	if parsed, err := time.Parse(time.RFC3339, stats.UpdatedAt); err == nil {
		updatedAt = &parsed
	}

	// All-or-nothing: a consumer never observes a partially refreshed
	// unlock snapshot.
	updated := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&Skin{}).Where("id = ?", update.id).
				Updates(map[string]any{"unlocks": update.fraction, "unlocks_updated_at": updatedAt})
			if result.Error != nil {
				return result.Error
			}
			updated += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to refresh skin unlocks: %w", err)
	}

	logger.Info("Refreshed skin unlocks",
		zap.Int("updated", updated),
		zap.Int("tracked", len(updates)),
	)

	return fmt.Sprintf("Updated %d/%d skin unlocks", updated, len(updates)), nil
}
