package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/i474232898/weather-dashboard/internal/observability"
)

// Service resolves a location to a forecast by walking the provider chain:
// primary, then secondary, then synthetic data.
type Service struct {
	primary   Provider
	secondary Provider
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a new Service. Either provider may be nil.
func NewService(primary, secondary Provider, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		metrics:   metrics,
	}
}

// Mode reports "live" when at least one provider is configured and "mock" otherwise.
func (s *Service) Mode() string {
	if configured(s.primary) || configured(s.secondary) {
		return "live"
	}
	return "mock"
}

// Providers returns the configured providers in priority order.
func (s *Service) Providers() []Provider {
	var out []Provider
	for _, p := range []Provider{s.primary, s.secondary} {
		if configured(p) {
			out = append(out, p)
		}
	}
	return out
}

// GetForecast never fails: when no provider yields data it returns mock data.
func (s *Service) GetForecast(ctx context.Context, location string) Forecast {
	if !configured(s.primary) && !configured(s.secondary) {
		s.logger.InfoContext(ctx, "no API keys configured, returning mock data", "location", location)
		return s.respond(MockForecast(location, Now()))
	}

	if configured(s.primary) {
		f, err := s.fetch(ctx, s.primary, location)
		if err == nil {
			f.Daily = capDaily(s.augment(ctx, location, f.Daily))
			return s.respond(f)
		}
		s.logger.WarnContext(ctx, "primary provider failed", "provider", s.primary.Name(), "location", location, "error", err)
	}

	if configured(s.secondary) {
		s.logger.InfoContext(ctx, "falling back to secondary provider", "provider", s.secondary.Name(), "location", location)
		f, err := s.fetch(ctx, s.secondary, location)
		if err == nil {
			f.Source = SourceOpenWeatherMap
			return s.respond(f)
		}
		s.logger.WarnContext(ctx, "secondary provider failed", "provider", s.secondary.Name(), "location", location, "error", err)
	}

	s.logger.WarnContext(ctx, "all providers failed, returning mock data", "location", location)
	return s.respond(MockForecast(location, Now()))
}

// augment borrows extra days from the secondary provider when the primary
// returned fewer than MaxDailyEntries. Failure keeps the shorter list.
func (s *Service) augment(ctx context.Context, location string, daily []DailyForecast) []DailyForecast {
	if len(daily) >= MaxDailyEntries || !configured(s.secondary) {
		return daily
	}

	s.logger.DebugContext(ctx, "fetching additional days", "provider", s.secondary.Name(), "have", len(daily))
	extra, err := s.fetch(ctx, s.secondary, location)
	if err != nil {
		s.metrics.Augmentations.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "failed to get additional days", "provider", s.secondary.Name(), "error", err)
		return daily
	}

	out := AugmentDaily(daily, extra.Daily)
	if len(out) == len(daily) {
		s.metrics.Augmentations.WithLabelValues("skipped").Inc()
	} else {
		s.metrics.Augmentations.WithLabelValues("applied").Inc()
	}
	return out
}

func (s *Service) fetch(ctx context.Context, p Provider, location string) (Forecast, error) {
	start := time.Now()
	f, err := p.FetchForecast(ctx, location)
	s.metrics.ProviderDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ProviderRequests.WithLabelValues(p.Name(), outcome).Inc()
	return f, err
}

func (s *Service) respond(f Forecast) Forecast {
	s.metrics.Responses.WithLabelValues(string(f.Source)).Inc()
	return f
}

// Fallback is the response used when request handling itself breaks down.
func (s *Service) Fallback(location string) Forecast {
	return s.respond(MockForecast(location, Now()))
}
