package revisions

import (
	"time"

	"gamedata-worker/feature/gw2api"
)

// ChangeType classifies why a revision was written.
type ChangeType string

const (
	ChangeAdded        ChangeType = "Added"
	ChangeUpdate       ChangeType = "Update"
	ChangeRemoved      ChangeType = "Removed"
	ChangeRediscovered ChangeType = "Rediscovered"
)

// SentinelBuildID marks "no build observed yet". It is reserved and never
// reported by the game API.
const SentinelBuildID = 0

// Build represents one observed snapshot of the external game API. Rows are
// immutable once created; the current build is always the most recently
// recorded one.
type Build struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

// Revision is an immutable, append-only snapshot of one entity's state in one
// language at one build. Revisions are never updated or deleted; an entity's
// history is the ordered set of revisions referencing it.
type Revision struct {
	ID          int64           `gorm:"primaryKey"`
	Data        string          `gorm:"type:longtext"`
	Description string          `gorm:"size:255"`
	Entity      string          `gorm:"size:32;index"`
	Language    gw2api.Language `gorm:"size:2"`
	Type        ChangeType      `gorm:"size:16"`
	BuildID     int             `gorm:"index"`
	CreatedAt   time.Time
}
