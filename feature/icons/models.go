package icons

import "time"

// Icon is a deduplicated record keyed by the icon's external numeric id.
// The signature never changes upstream for a given id, so rows are created
// lazily on first reference and never updated.
type Icon struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Signature string `gorm:"size:64"`
	CreatedAt time.Time
}
