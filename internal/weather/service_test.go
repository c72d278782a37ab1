package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/observability"
)

type fakeProvider struct {
	name       string
	configured bool
	forecast   Forecast
	err        error
	calls      int
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) FetchForecast(_ context.Context, _ string) (Forecast, error) {
	f.calls++
	if f.err != nil {
		return Forecast{}, f.err
	}
	return f.forecast, nil
}

func primaryWith(days int) *fakeProvider {
	return &fakeProvider{
		name:       "weatherapi",
		configured: true,
		forecast: Forecast{
			Source:   SourceWeatherAPI,
			Timezone: NamedZone("Europe/London"),
			Daily:    makeDays(days, SourceWeatherAPI),
			Location: Location{Name: "London"},
		},
	}
}

func secondaryWith(days int) *fakeProvider {
	return &fakeProvider{
		name:       "openweathermap",
		configured: true,
		forecast: Forecast{
			Timezone: OffsetZone(0),
			Daily:    makeDays(days, SourceOpenWeatherMap),
			Location: Location{Name: "London"},
		},
	}
}

func failing(name string) *fakeProvider {
	return &fakeProvider{name: name, configured: true, err: errors.New("boom")}
}

func newTestService(primary, secondary Provider) (*Service, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return NewService(primary, secondary, observability.Discard(), m), m
}

func freezeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	fc := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	SetClock(fc)
	t.Cleanup(func() { SetClock(nil) })
	return fc
}

func TestService_NoKeysReturnsMock(t *testing.T) {
	freezeClock(t)
	primary := &fakeProvider{name: "weatherapi"}
	secondary := &fakeProvider{name: "openweathermap"}
	svc, m := newTestService(primary, secondary)

	f := svc.GetForecast(context.Background(), "Springfield")

	assert.Equal(t, SourceMock, f.Source)
	assert.Len(t, f.Daily, MaxDailyEntries)
	assert.Equal(t, "Springfield", f.Location.Name)
	assert.Zero(t, primary.calls)
	assert.Zero(t, secondary.calls)
	assert.Equal(t, "mock", svc.Mode())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Responses.WithLabelValues("mock")))
}

func TestService_NilProvidersReturnMock(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	f := svc.GetForecast(context.Background(), "x")
	assert.Equal(t, SourceMock, f.Source)
	assert.Empty(t, svc.Providers())
}

func TestService_PrimaryAugmentedWithSecondary(t *testing.T) {
	primary := primaryWith(3)
	secondary := secondaryWith(5)
	svc, m := newTestService(primary, secondary)

	f := svc.GetForecast(context.Background(), "London")

	assert.Equal(t, SourceWeatherAPI, f.Source)
	require.Len(t, f.Daily, 5)
	for i := 3; i < 5; i++ {
		assert.Equal(t, SourceEstimated, f.Daily[i].Source)
		assert.True(t, f.Daily[i].SunriseEstimated)
		assert.True(t, f.Daily[i].SunsetEstimated)
	}
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Augmentations.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("weatherapi", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Responses.WithLabelValues("weatherapi")))
}

func TestService_AugmentFailureKeepsPrimary(t *testing.T) {
	svc, m := newTestService(primaryWith(3), failing("openweathermap"))

	f := svc.GetForecast(context.Background(), "London")

	assert.Equal(t, SourceWeatherAPI, f.Source)
	assert.Len(t, f.Daily, 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Augmentations.WithLabelValues("error")))
}

func TestService_AugmentOnlyForThreeDays(t *testing.T) {
	secondary := secondaryWith(5)
	svc, m := newTestService(primaryWith(2), secondary)

	f := svc.GetForecast(context.Background(), "London")

	assert.Len(t, f.Daily, 2)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Augmentations.WithLabelValues("skipped")))
}

func TestService_NoAugmentWhenPrimaryHasFiveDays(t *testing.T) {
	secondary := secondaryWith(5)
	svc, _ := newTestService(primaryWith(5), secondary)

	f := svc.GetForecast(context.Background(), "London")

	assert.Len(t, f.Daily, 5)
	assert.Zero(t, secondary.calls)
}

func TestService_PrimaryDailyCapped(t *testing.T) {
	svc, _ := newTestService(primaryWith(7), nil)
	f := svc.GetForecast(context.Background(), "London")
	assert.Len(t, f.Daily, MaxDailyEntries)
}

func TestService_FallsBackToSecondary(t *testing.T) {
	primary := failing("weatherapi")
	secondary := secondaryWith(5)
	svc, m := newTestService(primary, secondary)

	f := svc.GetForecast(context.Background(), "London")

	assert.Equal(t, SourceOpenWeatherMap, f.Source)
	assert.Equal(t, OffsetZone(0), f.Timezone)
	assert.Len(t, f.Daily, 5)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("weatherapi", "error")))
}

func TestService_SecondaryOnly(t *testing.T) {
	primary := &fakeProvider{name: "weatherapi"}
	secondary := secondaryWith(5)
	svc, _ := newTestService(primary, secondary)

	f := svc.GetForecast(context.Background(), "560001")

	assert.Equal(t, SourceOpenWeatherMap, f.Source)
	assert.Zero(t, primary.calls)
	assert.Equal(t, "live", svc.Mode())
	assert.Len(t, svc.Providers(), 1)
}

func TestService_AllProvidersFailReturnsMock(t *testing.T) {
	fc := freezeClock(t)
	svc, m := newTestService(failing("weatherapi"), failing("openweathermap"))

	f := svc.GetForecast(context.Background(), "Atlantis")

	assert.Equal(t, SourceMock, f.Source)
	assert.Equal(t, "Atlantis", f.Location.Name)
	assert.Equal(t, fc.Now().Unix(), f.Hourly[0].Dt)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Responses.WithLabelValues("mock")))
}

func TestService_Fallback(t *testing.T) {
	svc, _ := newTestService(primaryWith(3), nil)
	f := svc.Fallback("Oslo")
	assert.Equal(t, SourceMock, f.Source)
	assert.Equal(t, "Oslo", f.Location.Name)
}
