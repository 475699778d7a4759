package weather

import (
	"context"
	"log"
	"sort"
	"time"
)

const (
	// DefaultCurrentTimeout bounds current-conditions calls.
	DefaultCurrentTimeout = 6 * time.Second
	// DefaultForecastTimeout bounds forecast calls, which return more data.
	DefaultForecastTimeout = 8 * time.Second
)

// Gateway fetches weather data from a single provider and caches recent
// current-conditions lookups per city.
type Gateway struct {
	provider Provider
	cache    SnapshotCache

	currentTimeout  time.Duration
	forecastTimeout time.Duration
}

// NewGateway creates a Gateway. Non-positive timeouts fall back to defaults.
func NewGateway(provider Provider, cache SnapshotCache, currentTimeout, forecastTimeout time.Duration) *Gateway {
	if currentTimeout <= 0 {
		currentTimeout = DefaultCurrentTimeout
	}
	if forecastTimeout <= 0 {
		forecastTimeout = DefaultForecastTimeout
	}
	return &Gateway{
		provider:        provider,
		cache:           cache,
		currentTimeout:  currentTimeout,
		forecastTimeout: forecastTimeout,
	}
}

// Current returns current conditions for a city. Results are cached per
// normalized city name for the lifetime of the process; entries never expire
// by time, staleness is an accepted trade-off for conversational use.
func (g *Gateway) Current(ctx context.Context, city string) (Snapshot, error) {
	city = NormalizeCity(city)

	if g.cache != nil {
		if snap, ok := g.cache.Get(city); ok {
			return snap, nil
		}
	}

	return g.fetchCurrent(ctx, city)
}

// Refresh fetches current conditions bypassing the cache and replaces the
// cached entry on success.
func (g *Gateway) Refresh(ctx context.Context, city string) (Snapshot, error) {
	return g.fetchCurrent(ctx, NormalizeCity(city))
}

func (g *Gateway) fetchCurrent(ctx context.Context, city string) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.currentTimeout)
	defer cancel()

	snap, err := g.provider.Current(ctx, city)
	if err != nil {
		log.Printf("gateway: current fetch failed for %s: %v", city, err)
		return Snapshot{}, err
	}

	if g.cache != nil {
		g.cache.Put(city, snap)
	}
	return snap, nil
}

// Forecast returns the provider's multi-point forecast list for a city.
// Forecast results are not cached.
func (g *Gateway) Forecast(ctx context.Context, city string) ([]ForecastEntry, error) {
	city = NormalizeCity(city)

	ctx, cancel := context.WithTimeout(ctx, g.forecastTimeout)
	defer cancel()

	entries, err := g.provider.Forecast(ctx, city)
	if err != nil {
		log.Printf("gateway: forecast fetch failed for %s: %v", city, err)
		return nil, err
	}
	return entries, nil
}

// Tomorrow returns the forecast entry for tomorrow closest to noon.
// ok is false when no entry falls on tomorrow's date; that is a valid empty
// result, not an error.
func (g *Gateway) Tomorrow(ctx context.Context, city string) (ForecastEntry, bool, error) {
	entries, err := g.Forecast(ctx, city)
	if err != nil {
		return ForecastEntry{}, false, err
	}
	entry, ok := TomorrowEntry(entries, time.Now().UTC())
	return entry, ok, nil
}

// TomorrowEntry selects, among entries whose UTC calendar date is the day
// after now, the single entry closest to noon. Ties go to the earliest
// timestamp; the sort is stable so selection never depends on input order.
func TomorrowEntry(entries []ForecastEntry, now time.Time) (ForecastEntry, bool) {
	tomorrow := now.UTC().AddDate(0, 0, 1)
	ty, tm, td := tomorrow.Date()
	noon := time.Date(ty, tm, td, 12, 0, 0, 0, time.UTC)

	var candidates []ForecastEntry
	for _, e := range entries {
		y, m, d := e.Timestamp.UTC().Date()
		if y == ty && m == tm && d == td {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return ForecastEntry{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := absDuration(candidates[i].Timestamp.Sub(noon))
		dj := absDuration(candidates[j].Timestamp.Sub(noon))
		if di != dj {
			return di < dj
		}
		return candidates[i].Timestamp.Before(candidates[j].Timestamp)
	})
	return candidates[0], true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
