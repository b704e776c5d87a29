package gw2api

// Config holds configuration for the game data API client.
type Config struct {
	// BaseURL is the root of the official game API.
	BaseURL string `mapstructure:"base_url" default:"https://api.guildwars2.com"`
	// UnlocksURL is the endpoint returning aggregate unlock statistics.
	UnlocksURL string `mapstructure:"unlocks_url" default:"https://api.gw2efficiency.com/tracking/unlocks"`
	// IconCDNURL is the root of the icon CDN.
	IconCDNURL string `mapstructure:"icon_cdn_url" default:"https://icons-gw2.darthmaim-cdn.com"`
	// TimeoutSeconds is the per-request timeout in seconds. A request past
	// this deadline fails with ErrSourceUnavailable instead of hanging a
	// worker.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
