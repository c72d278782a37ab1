package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Scheduler periodically asks each configured provider for a known location
// and remembers whether it answered.
type Scheduler struct {
	scheduler *gocron.Scheduler
	providers []weather.Provider
	location  string
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
	history   *store.MemoryStore
}

// New creates a new Scheduler.
func New(
	providers []weather.Provider,
	location string,
	interval time.Duration,
	history *store.MemoryStore,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		providers: providers,
		location:  location,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
		history:   history,
	}
}

// Start schedules the probe job. It is a no-op when the interval is zero or
// there is nothing to probe.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || len(s.providers) == 0 || s.location == "" {
		s.logger.Info("status probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("status probe started", "interval", s.interval, "location", s.location)
	return nil
}

// RunOnce probes every provider concurrently and records the outcome.
func (s *Scheduler) RunOnce() {
	var wg sync.WaitGroup
	for _, p := range s.providers {
		wg.Add(1)
		go func(p weather.Provider) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			_, err := p.FetchForecast(ctx, s.location)
			s.record(p.Name(), err)
		}(p)
	}
	wg.Wait()
}

func (s *Scheduler) record(provider string, err error) {
	res := store.ProbeResult{OK: err == nil, CheckedAt: weather.Now().UTC()}
	up := 1.0
	if err != nil {
		res.Error = err.Error()
		up = 0
		s.logger.Warn("status probe failed", "provider", provider, "error", err)
	}
	s.metrics.ProviderUp.WithLabelValues(provider).Set(up)

	s.history.Save(provider, res)
}

// Results returns the latest probe outcomes keyed by provider name.
func (s *Scheduler) Results() map[string]store.ProbeResult {
	return s.history.LatestAll()
}

// History returns the retained probe outcomes of one provider, oldest first.
func (s *Scheduler) History(provider string) ([]store.ProbeResult, error) {
	return s.history.Range(provider, time.Time{}, weather.Now())
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
