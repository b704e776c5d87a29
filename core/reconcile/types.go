package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gamedata-worker/feature/gw2api"
	"gamedata-worker/feature/revisions"

	"gorm.io/gorm"
)

// Adapter provides the entity-kind-specific persistence for the engine.
// Every entity kind (items, skins, ...) follows the same structural pattern;
// adapters only supply the kind's table mapping and denormalized fields.
type Adapter interface {
	// Kind is the revision entity tag, e.g. "Item".
	Kind() string

	// Endpoint is the API endpoint serving this kind, e.g. "/v2/items".
	Endpoint() string

	// Exists reports whether an entity row with the id is already persisted.
	Exists(ctx context.Context, db *gorm.DB, id int) (bool, error)

	// Create inserts the entity row with all current revision pointers set to
	// the given revisions and schema version 1. A duplicate id must surface
	// as ErrDuplicateEntity.
	Create(ctx context.Context, db *gorm.DB, data gw2api.LocalizedEntity, iconID *int, revs map[gw2api.Language]revisions.Revision) error

	// Apply updates the denormalized fields of an existing entity, swaps all
	// current revision pointers to the given revisions and bumps the version.
	// When rediscovered is set it additionally clears the removed flag.
	// Returns false when no row with the id exists.
	Apply(ctx context.Context, db *gorm.DB, id int, data gw2api.LocalizedEntity, iconID *int, revs map[gw2api.Language]revisions.Revision, rediscovered bool) (bool, error)

	// MarkRemoved flags an existing entity as removed from the API and stamps
	// lastCheckedAt. Returns false when no row with the id exists.
	MarkRemoved(ctx context.Context, db *gorm.DB, id int, now time.Time) (bool, error)
}

// Loader fetches per-language entity payloads in bulk. Implemented by
// gw2api.Client; abstracted so engine tests can inject fixtures.
type Loader interface {
	Entities(ctx context.Context, endpoint string, ids []int) (map[int]gw2api.LocalizedEntity, map[int]error, error)
}

// IconResolver ensures an icon row exists for an icon URL and returns its id,
// or nil when the entity has no icon.
type IconResolver interface {
	Ensure(ctx context.Context, db *gorm.DB, iconURL string) (*int, error)
}

// Summary reports the outcome of one batch operation. Per-id failures are
// isolated: successfully processed ids are committed regardless, and the
// failure causes are surfaced through the job's error detail.
type Summary struct {
	// Processed counts ids that were fully applied.
	Processed int

	// Skipped counts ids that were deliberately ignored (unknown to the API,
	// or soft-skipped by the operation's contract).
	Skipped int

	// Failed maps each failed id to its cause.
	Failed map[int]string
}

func (s *Summary) fail(id int, reason string) {
	if s.Failed == nil {
		s.Failed = make(map[int]string)
	}
	s.Failed[id] = reason
}

// Err returns an error describing the failed ids, or nil if none failed.
func (s *Summary) Err() error {
	if len(s.Failed) == 0 {
		return nil
	}

	ids := make([]int, 0, len(s.Failed))
	for id := range s.Failed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d: %s", id, s.Failed[id])
	}

	return fmt.Errorf("%d of %d ids failed: %s", len(s.Failed), len(s.Failed)+s.Processed+s.Skipped, strings.Join(parts, "; "))
}

// Result builds the human-readable job summary, e.g. "Added 5 items".
func (s *Summary) Result(verb, kind string) string {
	result := fmt.Sprintf("%s %d %s", verb, s.Processed, kind)
	if s.Skipped > 0 {
		result += fmt.Sprintf(" (%d skipped)", s.Skipped)
	}
	return result
}
