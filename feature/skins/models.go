package skins

import "time"

// Kind is the revision entity tag for skins.
const Kind = "Skin"

// Endpoint is the API endpoint serving skins.
const Endpoint = "/v2/skins"

// UnlockStatsID identifies the skin collection in the unlock statistics API.
const UnlockStatsID = "skins"

// CurrentVersion is the schema version stamped onto newly created skins.
const CurrentVersion = 1

// Skin is the denormalized current state of one skin, with per-language
// current revision pointers. Unlocks is the fraction of tracked accounts
// that unlocked the skin, refreshed by the skins.unlocks job.
type Skin struct {
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

	Unlocks          *float64
	UnlocksUpdatedAt *time.Time

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

// SkinHistory links a skin to every revision ever created for it, in
// insertion order. Rows are append-only.
type SkinHistory struct {
	SkinID     int   `gorm:"primaryKey;autoIncrement:false"`
	RevisionID int64 `gorm:"primaryKey;autoIncrement:false"`
}
