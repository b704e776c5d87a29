package icons

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertAttempts bounds transparent retries of the icon upsert before the
// conflict is surfaced to the caller.
const upsertAttempts = 3

// Resolver ensures icon rows exist for icon URLs.
type Resolver struct{}

// NewResolver creates an icon resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Ensure parses the icon URL and idempotently creates the icon row. It
// returns the icon id for linking, or nil when the URL carries no parseable
// icon. Concurrent calls for the same id never create duplicate rows: the
// insert resolves conflicts on the primary key to a no-op, since signatures
// for a given id never change upstream.
func (r *Resolver) Ensure(ctx context.Context, db *gorm.DB, iconURL string) (*int, error) {
	identity, ok := Parse(iconURL)
	if !ok {
		return nil, nil
	}

	icon := Icon{ID: identity.ID, Signature: identity.Signature}

	var lastErr error
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(&icon).Error
		if err == nil {
			return &identity.ID, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w for icon %d: %v", ErrStorageConflict, identity.ID, lastErr)
}
