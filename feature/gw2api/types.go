package gw2api

import "encoding/json"

// Language is one of the fixed set of API languages. Every entity is fetched
// in all languages together so revisions stay consistent across languages for
// the same observed state.
type Language string

const (
	LanguageDe Language = "de"
	LanguageEn Language = "en"
	LanguageEs Language = "es"
	LanguageFr Language = "fr"
)

// Languages lists every configured language in a stable order.
var Languages = []Language{LanguageDe, LanguageEn, LanguageEs, LanguageFr}

// Entity is the decoded representation of one entity in one language.
// Raw preserves the exact API payload for revision storage.
type Entity struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Rarity      string        `json:"rarity"`
	Type        string        `json:"type"`
	Details     EntityDetails `json:"details"`
	VendorValue int           `json:"vendor_value"`
	Level       int           `json:"level"`

	Raw json.RawMessage `json:"-"`
}

// EntityDetails carries the type-specific sub-object of an entity payload.
type EntityDetails struct {
	Type        string `json:"type"`
	WeightClass string `json:"weight_class"`
}

// LocalizedEntity holds one entity's payload per language.
type LocalizedEntity map[Language]Entity

// UnlockStats is the aggregate unlock data returned by the statistics API.
// Data maps entity id (as string) to the raw number of accounts that unlocked
// it; Total is the denominator for normalization.
type UnlockStats struct {
	Total     int            `json:"total"`
	UpdatedAt string         `json:"updatedAt"`
	Data      map[string]int `json:"data"`
}
