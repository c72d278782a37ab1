package weather

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockForecast_Shape(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f := MockForecast("Paris", now)

	assert.Equal(t, SourceMock, f.Source)
	assert.Equal(t, NamedZone("UTC"), f.Timezone)
	assert.Equal(t, Location{Name: "Paris", Country: "Mock Country", Region: "Mock Region", Timezone: "UTC"}, f.Location)

	c := f.Current
	assert.Equal(t, 22.0, c.Temp)
	assert.Equal(t, 25.0, c.FeelsLike)
	assert.Equal(t, 1013.0, c.Pressure)
	assert.Equal(t, "S", c.WindDir)
	assert.Equal(t, now.Unix()-3600, c.Sunrise)
	assert.Equal(t, now.Unix()+7200, c.Sunset)
	assert.Equal(t, "6:30 AM", c.SunriseTime)
	assert.Equal(t, "6:45 PM", c.SunsetTime)
	require.Len(t, c.Weather, 1)
	assert.Equal(t, "clear sky", c.Weather[0].Description)

	require.Len(t, f.Hourly, 24)
	for i, h := range f.Hourly {
		assert.Equal(t, now.Unix()+int64(i)*3600, h.Dt)
		assert.Len(t, h.Weather, 1)
		assert.GreaterOrEqual(t, h.Temp, 20.0)
		assert.Less(t, h.Temp, 30.0)
		assert.GreaterOrEqual(t, h.Humidity, 60.0)
		assert.Less(t, h.Humidity, 80.0)
		assert.GreaterOrEqual(t, h.Pop, 0.0)
		assert.Less(t, h.Pop, 0.3)
	}

	require.Len(t, f.Daily, MaxDailyEntries)
	for i, d := range f.Daily {
		assert.Equal(t, now.Unix()+int64(i)*86400, d.Dt)
		assert.Equal(t, SourceMock, d.Source)
		assert.Len(t, d.Weather, 1)
		assert.GreaterOrEqual(t, d.Temp.Min, 15.0)
		assert.Less(t, d.Temp.Min, 20.0)
		assert.GreaterOrEqual(t, d.Temp.Max, 25.0)
		assert.Less(t, d.Temp.Max, 33.0)
	}
}

func TestForecastJSON(t *testing.T) {
	f := MockForecast("Delhi", time.Unix(0, 0))
	f.Current.UVI = nil

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "mock", m["source"])
	assert.Equal(t, "UTC", m["timezone"])

	current := m["current"].(map[string]any)
	assert.NotContains(t, current, "uvi")
	assert.Contains(t, current, "wind_deg")

	daily := m["daily"].([]any)
	assert.Len(t, daily, 5)
	assert.Contains(t, daily[0].(map[string]any), "sunrise_estimated")
}

func TestTimezoneJSON(t *testing.T) {
	raw, err := json.Marshal(OffsetZone(19800))
	require.NoError(t, err)
	assert.Equal(t, "19800", string(raw))

	raw, err = json.Marshal(NamedZone("Asia/Kolkata"))
	require.NoError(t, err)
	assert.Equal(t, `"Asia/Kolkata"`, string(raw))

	var tz Timezone
	require.NoError(t, json.Unmarshal([]byte("-3600"), &tz))
	assert.Equal(t, OffsetZone(-3600), tz)
	require.NoError(t, json.Unmarshal([]byte(`"UTC"`), &tz))
	assert.Equal(t, NamedZone("UTC"), tz)
}
