package store

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func result(ok bool, minutes int) ProbeResult {
	return ProbeResult{OK: ok, CheckedAt: base.Add(time.Duration(minutes) * time.Minute)}
}

func TestMemoryStore_LatestAndMaxHistory(t *testing.T) {
	s := NewMemoryStore(3, 0)

	_, err := s.Latest("weatherapi")
	assert.ErrorIs(t, err, ErrNotFound)

	for i := range 5 {
		s.Save("weatherapi", result(i%2 == 0, i))
	}

	latest, err := s.Latest("weatherapi")
	require.NoError(t, err)
	assert.Equal(t, result(true, 4), latest)

	all, err := s.Range("weatherapi", time.Time{}, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []ProbeResult{result(true, 2), result(false, 3), result(true, 4)}, all)
}

func TestMemoryStore_MaxAge(t *testing.T) {
	weather.SetClock(clockwork.NewFakeClockAt(base.Add(30 * time.Minute)))
	t.Cleanup(func() { weather.SetClock(nil) })

	s := NewMemoryStore(0, 10*time.Minute)
	s.Save("owm", result(true, 0))
	s.Save("owm", result(true, 15))
	s.Save("owm", result(false, 25))

	all, err := s.Range("owm", time.Time{}, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []ProbeResult{result(false, 25)}, all)
}

func TestMemoryStore_MaxAgeKeepsNewest(t *testing.T) {
	weather.SetClock(clockwork.NewFakeClockAt(base.Add(24 * time.Hour)))
	t.Cleanup(func() { weather.SetClock(nil) })

	s := NewMemoryStore(0, time.Minute)
	s.Save("owm", result(true, 0))

	latest, err := s.Latest("owm")
	require.NoError(t, err)
	assert.Equal(t, result(true, 0), latest)
}

func TestMemoryStore_Range(t *testing.T) {
	s := NewMemoryStore(0, 0)
	for i := range 4 {
		s.Save("weatherapi", result(true, i*10))
	}

	got, err := s.Range("weatherapi", base.Add(10*time.Minute), base.Add(20*time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Range("weatherapi", base.Add(2*time.Hour), base.Add(3*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Range("missing", time.Time{}, base)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_LatestAll(t *testing.T) {
	s := NewMemoryStore(0, 0)
	assert.Empty(t, s.LatestAll())

	s.Save("weatherapi", result(true, 0))
	s.Save("weatherapi", result(false, 1))
	s.Save("openweathermap", result(true, 1))

	assert.Equal(t, map[string]ProbeResult{
		"weatherapi":     result(false, 1),
		"openweathermap": result(true, 1),
	}, s.LatestAll())
}
