package weather

import (
	"time"

	"github.com/pfjus/Weather-Chatbot/internal/common"
)

// Snapshot is the normalized view of current conditions for one city.
// Immutable once constructed; repeated cached lookups return the same value.
type Snapshot struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperatureC"`
	Description  string  `json:"description"`
	HumidityPct  int     `json:"humidityPercent"`
	WindMPS      float64 `json:"windMps"`
}

// ForecastEntry is one point of a provider's multi-point forecast.
type ForecastEntry struct {
	Timestamp    time.Time `json:"timestamp"` // always UTC
	TemperatureC float64   `json:"temperatureC"`
	Description  string    `json:"description"`
	HumidityPct  int       `json:"humidityPercent"`
	WindMPS      float64   `json:"windMps"`
}

// NormalizeCity returns the canonical capitalized form of a city name.
// City identity is exact-string on this form; there is no gazetteer lookup
// and no fuzzy matching.
func NormalizeCity(city string) string {
	return common.TitleCase(city)
}

// SnapshotCache is the contract the per-city cache must satisfy.
// Writes are idempotent replacements keyed by normalized city name.
type SnapshotCache interface {
	Get(city string) (Snapshot, bool)
	Put(city string, snapshot Snapshot)
}
