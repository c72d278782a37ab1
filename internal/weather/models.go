package weather

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Source tags which upstream produced a forecast (or a single forecast day).
type Source string

const (
	SourceWeatherAPI     Source = "weatherapi"
	SourceOpenWeatherMap Source = "openweathermap"
	SourceMock           Source = "mock"
	SourceEstimated      Source = "estimated"
)

// MaxDailyEntries is the number of forecast days the dashboard displays.
const MaxDailyEntries = 5

// Timezone is either a named zone (WeatherAPI's tz_id) or a UTC offset in
// seconds (OpenWeatherMap). It marshals to a JSON string or number accordingly.
type Timezone struct {
	Name          string
	OffsetSeconds int
	IsOffset      bool
}

// NamedZone returns a Timezone holding a zone identifier.
func NamedZone(name string) Timezone {
	return Timezone{Name: name}
}

// OffsetZone returns a Timezone holding a UTC offset in seconds.
func OffsetZone(seconds int) Timezone {
	return Timezone{OffsetSeconds: seconds, IsOffset: true}
}

func (t Timezone) MarshalJSON() ([]byte, error) {
	if t.IsOffset {
		return []byte(strconv.Itoa(t.OffsetSeconds)), nil
	}
	return json.Marshal(t.Name)
}

func (t *Timezone) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*t = Timezone{}
		return json.Unmarshal(data, &t.Name)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = OffsetZone(n)
	return nil
}

// Condition is a single display condition. Icon is always an absolute URL.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Current holds present conditions.
type Current struct {
	Temp        float64     `json:"temp"`
	FeelsLike   float64     `json:"feels_like"`
	Humidity    float64     `json:"humidity"`
	Pressure    float64     `json:"pressure"`
	UVI         *float64    `json:"uvi,omitempty"`
	WindSpeed   float64     `json:"wind_speed"` // m/s
	WindDeg     *float64    `json:"wind_deg,omitempty"`
	WindDir     string      `json:"wind_dir,omitempty"`
	Weather     []Condition `json:"weather"`
	Sunrise     int64       `json:"sunrise"`
	Sunset      int64       `json:"sunset"`
	SunriseTime string      `json:"sunrise_time,omitempty"`
	SunsetTime  string      `json:"sunset_time,omitempty"`
}

// HourlyForecast is one hourly (or 3-hourly) sample.
type HourlyForecast struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	Weather   []Condition `json:"weather"`
	Pop       float64     `json:"pop"` // 0-1
	Humidity  float64     `json:"humidity"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   *float64    `json:"wind_deg,omitempty"`
	UV        *float64    `json:"uv,omitempty"`
}

// TempRange is a day's temperature span.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyForecast summarizes one calendar day.
type DailyForecast struct {
	Dt               int64            `json:"dt"`
	Temp             TempRange        `json:"temp"`
	Weather          []Condition      `json:"weather"`
	Pop              float64          `json:"pop"`
	Humidity         float64          `json:"humidity"`
	WindSpeed        float64          `json:"wind_speed"`
	Sunrise          int64            `json:"sunrise"`
	Sunset           int64            `json:"sunset"`
	SunriseTime      string           `json:"sunrise_time,omitempty"`
	SunsetTime       string           `json:"sunset_time,omitempty"`
	SunriseEstimated bool             `json:"sunrise_estimated"`
	SunsetEstimated  bool             `json:"sunset_estimated"`
	Source           Source           `json:"source"`
	Hourly           []HourlyForecast `json:"hourly,omitempty"`
	UV               *float64         `json:"uv,omitempty"`
}

// Location describes the place a forecast is for.
type Location struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Forecast is the canonical shape every provider is mapped into.
type Forecast struct {
	Source   Source           `json:"source"`
	Timezone Timezone         `json:"timezone"`
	Current  Current          `json:"current"`
	Hourly   []HourlyForecast `json:"hourly"`
	Daily    []DailyForecast  `json:"daily"`
	Location Location         `json:"location"`
}

// Float returns a pointer to v, for the optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
