package weather

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by a provider that has no API key.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrNoData marks a soft provider failure: the caller should move on to the next tier.
	ErrNoData = errors.New("provider returned no data")
)

// Provider abstracts a forecast source (WeatherAPI.com, OpenWeatherMap).
type Provider interface {
	Name() string
	// Configured reports whether the provider has the credentials it needs.
	Configured() bool
	FetchForecast(ctx context.Context, location string) (Forecast, error)
}

func configured(p Provider) bool {
	return p != nil && p.Configured()
}
