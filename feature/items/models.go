package items

import "time"

// Kind is the revision entity tag for items.
const Kind = "Item"

// Endpoint is the API endpoint serving items.
const Endpoint = "/v2/items"

// CurrentVersion is the schema version stamped onto newly created items.
const CurrentVersion = 1

// Item is the denormalized current state of one item, with per-language
// current revision pointers. Rows are created on first observation, mutated
// on Update/Rediscovered events and soft-deleted via RemovedFromAPI; they are
// never hard-deleted.
type Item struct {
	ID int `gorm:"primaryKey;autoIncrement:false"`

	NameDe string `gorm:"size:255"`
	NameEn string `gorm:"size:255"`
	NameEs string `gorm:"size:255"`
	NameFr string `gorm:"size:255"`

	IconID  *int
	Rarity  string `gorm:"size:32"`
	Type    string `gorm:"size:32"`
	Subtype string `gorm:"size:32"`
	Weight  string `gorm:"size:32"`
	Value   int
	Level   int

	Version int

	CurrentDeID *int64 `gorm:"column:current_de_id"`
	CurrentEnID *int64 `gorm:"column:current_en_id"`
	CurrentEsID *int64 `gorm:"column:current_es_id"`
	CurrentFrID *int64 `gorm:"column:current_fr_id"`

	RemovedFromAPI bool `gorm:"column:removed_from_api;index"`
	LastCheckedAt  time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemHistory links an item to every revision ever created for it, in
// insertion order. Rows are append-only.
type ItemHistory struct {
	ItemID     int   `gorm:"primaryKey;autoIncrement:false"`
	RevisionID int64 `gorm:"primaryKey;autoIncrement:false"`
}
