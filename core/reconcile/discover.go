package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gamedata-worker/core/queue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IDLister fetches the complete id list of an endpoint. Implemented by
// gw2api.Client.
type IDLister interface {
	EntityIDs(ctx context.Context, endpoint string) ([]int, error)
}

// Inventory exposes which entity ids a kind already has persisted and which
// of them are currently flagged removed.
type Inventory interface {
	KnownIDs(ctx context.Context, db *gorm.DB) (map[int]bool, error)
}

// DiscoverJobs names the job types a discovery run enqueues to.
type DiscoverJobs struct {
	New          queue.JobType
	Rediscovered queue.JobType
	Removed      queue.JobType
}

// Discoverer diffs the API's id list against the persisted inventory and
// enqueues the resulting change batches. It performs no entity mutation
// itself; each change class becomes independent jobs capped at the queue's
// batch size.
type Discoverer struct {
	db     *gorm.DB
	lister IDLister
	logger *zap.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(db *gorm.DB, lister IDLister, logger *zap.Logger) *Discoverer {
	return &Discoverer{db: db, lister: lister, logger: logger}
}

// Discover computes new, rediscovered and removed id sets for the adapter's
// kind and enqueues them.
func (d *Discoverer) Discover(ctx context.Context, adapter Adapter, inventory Inventory, jobs DiscoverJobs) (string, error) {
	apiIDs, err := d.lister.EntityIDs(ctx, adapter.Endpoint())
	if err != nil {
		return "", err
	}

	known, err := inventory.KnownIDs(ctx, d.db)
	if err != nil {
		return "", err
	}

	apiSet := make(map[int]struct{}, len(apiIDs))
	var newIDs, rediscoveredIDs []int
	for _, id := range apiIDs {
		apiSet[id] = struct{}{}

		removed, ok := known[id]
		switch {
		case !ok:
			newIDs = append(newIDs, id)
		case removed:
			rediscoveredIDs = append(rediscoveredIDs, id)
		}
	}

	var removedIDs []int
	for id, removed := range known {
		if _, ok := apiSet[id]; !ok && !removed {
			removedIDs = append(removedIDs, id)
		}
	}

	sort.Ints(newIDs)
	sort.Ints(rediscoveredIDs)
	sort.Ints(removedIDs)

	if _, err := queue.Enqueue(ctx, d.db, jobs.New, newIDs, queue.DefaultPriority); err != nil {
		return "", err
	}
	if _, err := queue.Enqueue(ctx, d.db, jobs.Rediscovered, rediscoveredIDs, queue.DefaultPriority); err != nil {
		return "", err
	}
	if _, err := queue.Enqueue(ctx, d.db, jobs.Removed, removedIDs, queue.DefaultPriority); err != nil {
		return "", err
	}

	d.logger.Info("Discovered changes",
		zap.String("kind", adapter.Kind()),
		zap.Int("api_ids", len(apiIDs)),
		zap.Int("new", len(newIDs)),
		zap.Int("rediscovered", len(rediscoveredIDs)),
		zap.Int("removed", len(removedIDs)),
	)

	kind := strings.ToLower(adapter.Kind()) + "s"
	return fmt.Sprintf("Queued %d new, %d rediscovered, %d removed %s", len(newIDs), len(rediscoveredIDs), len(removedIDs), kind), nil
}
