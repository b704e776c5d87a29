package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamedata-worker/feature/gw2api"
	"gamedata-worker/feature/revisions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Revision descriptions, matching the wording stored since the first build.
const (
	descriptionAdded        = "Added to API"
	descriptionUpdated      = "Updated in API"
	descriptionRediscovered = "Rediscovered in API"
)

// Engine drives Loader, IconResolver and the revision writer to bring entity
// rows and their current-revision pointers up to date for a batch of ids.
//
// All operations are driven by a change classification supplied by the
// producer; the engine trusts the classification and never diffs content. The
// current build is passed in explicitly by the caller.
type Engine struct {
	db     *gorm.DB
	loader Loader
	icons  IconResolver
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(db *gorm.DB, loader Loader, icons IconResolver, logger *zap.Logger) *Engine {
	return &Engine{db: db, loader: loader, icons: icons, logger: logger}
}

// Added creates entity rows for ids newly observed in the API. Each id gets
// one revision per language (change type Added) and the entity row is created
// with all current-revision pointers set to them.
//
// Re-delivery of an id that already has a row does not overwrite anything:
// the id is recorded as failed and the returned error wraps
// ErrDuplicateEntity so the queue treats the job as terminal. Siblings in the
// batch are still committed first.
func (e *Engine) Added(ctx context.Context, adapter Adapter, buildID int, ids []int) (*Summary, error) {
	summary := &Summary{}
	if len(ids) == 0 {
		return summary, nil
	}

	loaded, problems, err := e.loader.Entities(ctx, adapter.Endpoint(), ids)
	if err != nil {
		return nil, err
	}

	duplicate := false

	for _, id := range ids {
		if reason, ok := problems[id]; ok {
			summary.fail(id, reason.Error())
			continue
		}

		data, ok := loaded[id]
		if !ok {
			// The API no longer returns the id; nothing to add.
			summary.Skipped++
			continue
		}

		exists, err := adapter.Exists(ctx, e.db, id)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}
		if exists {
			summary.fail(id, ErrDuplicateEntity.Error())
			duplicate = true
			continue
		}

		iconID, err := e.icons.Ensure(ctx, e.db, data[gw2api.LanguageEn].Icon)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}

		revs, err := revisions.Create(ctx, e.db, adapter.Kind(), buildID, revisions.ChangeAdded, descriptionAdded, rawPayloads(data))
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}

		if err := adapter.Create(ctx, e.db, data, iconID, revs); err != nil {
			if errors.Is(err, ErrDuplicateEntity) || errors.Is(err, gorm.ErrDuplicatedKey) {
				summary.fail(id, ErrDuplicateEntity.Error())
				duplicate = true
				continue
			}
			summary.fail(id, err.Error())
			continue
		}

		summary.Processed++
	}

	e.logBatch(adapter, "added", summary)

	if duplicate {
		return summary, fmt.Errorf("%s batch: %w", adapter.Kind(), ErrDuplicateEntity)
	}

	return summary, nil
}

// Updated writes fresh revisions (change type Update) for every id and swaps
// the entity's current-revision pointers, bumping its version. A new revision
// is written regardless of whether content actually changed; downstream
// consumers rely on one revision per observed build.
func (e *Engine) Updated(ctx context.Context, adapter Adapter, buildID int, ids []int) (*Summary, error) {
	return e.apply(ctx, adapter, buildID, ids, false)
}

// Rediscovered is like Updated but additionally clears the removed flag.
// Ids without an existing entity row are soft-skipped: an entity cannot be
// rediscovered before it exists.
func (e *Engine) Rediscovered(ctx context.Context, adapter Adapter, buildID int, ids []int) (*Summary, error) {
	return e.apply(ctx, adapter, buildID, ids, true)
}

func (e *Engine) apply(ctx context.Context, adapter Adapter, buildID int, ids []int, rediscovered bool) (*Summary, error) {
	summary := &Summary{}
	if len(ids) == 0 {
		return summary, nil
	}

	changeType := revisions.ChangeUpdate
	description := descriptionUpdated
	if rediscovered {
		changeType = revisions.ChangeRediscovered
		description = descriptionRediscovered
	}

	loaded, problems, err := e.loader.Entities(ctx, adapter.Endpoint(), ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if reason, ok := problems[id]; ok {
			summary.fail(id, reason.Error())
			continue
		}

		data, ok := loaded[id]
		if !ok {
			summary.Skipped++
			continue
		}

		// Check existence before writing anything so a missing entity leaves
		// no orphan revisions behind.
		exists, err := adapter.Exists(ctx, e.db, id)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}
		if !exists {
			if rediscovered {
				summary.Skipped++
			} else {
				summary.fail(id, "entity does not exist")
			}
			continue
		}

		iconID, err := e.icons.Ensure(ctx, e.db, data[gw2api.LanguageEn].Icon)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}

		revs, err := revisions.Create(ctx, e.db, adapter.Kind(), buildID, changeType, description, rawPayloads(data))
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}

		found, err := adapter.Apply(ctx, e.db, id, data, iconID, revs, rediscovered)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}
		if !found {
			// Row disappeared between the existence check and the update.
			summary.fail(id, "entity does not exist")
			continue
		}

		summary.Processed++
	}

	e.logBatch(adapter, string(changeType), summary)

	return summary, nil
}

// Removed flags entities no longer returned by the API. Only the removed flag
// and lastCheckedAt change; current-revision pointers stay untouched and no
// revision is written. Ids without an existing row are silently skipped.
func (e *Engine) Removed(ctx context.Context, adapter Adapter, ids []int) (*Summary, error) {
	summary := &Summary{}
	now := time.Now()

	for _, id := range ids {
		found, err := adapter.MarkRemoved(ctx, e.db, id, now)
		if err != nil {
			summary.fail(id, err.Error())
			continue
		}
		if !found {
			summary.Skipped++
			continue
		}
		summary.Processed++
	}

	e.logBatch(adapter, "removed", summary)

	return summary, nil
}

func (e *Engine) logBatch(adapter Adapter, operation string, summary *Summary) {
	e.logger.Info("Reconciled batch",
		zap.String("kind", adapter.Kind()),
		zap.String("operation", operation),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", len(summary.Failed)),
	)
}

func rawPayloads(data gw2api.LocalizedEntity) map[gw2api.Language]string {
	payloads := make(map[gw2api.Language]string, len(data))
	for lang, entity := range data {
		payloads[lang] = string(entity.Raw)
	}
	return payloads
}
