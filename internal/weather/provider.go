package weather

import (
	"context"
)

// Provider abstracts the remote weather data source (e.g. OpenWeatherMap).
// Implementations return *GatewayError for all expected failure kinds.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Snapshot, error)
	Forecast(ctx context.Context, city string) ([]ForecastEntry, error)
}
