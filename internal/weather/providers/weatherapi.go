package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrNoForecastDays is returned when WeatherAPI answers without any forecast days.
var ErrNoForecastDays = errors.New("weatherapi returned no forecast days")

// DefaultWeatherAPIDays is what the free WeatherAPI tier serves.
const DefaultWeatherAPIDays = 3

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(httpCfg HTTPClientConfig, apiKey string, days int) *WeatherAPIProvider {
	if days <= 0 {
		days = DefaultWeatherAPIDays
	}
	return &WeatherAPIProvider{
		name:    string(weather.SourceWeatherAPI),
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1",
		days:    days,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Configured() bool {
	return p.apiKey != ""
}

type weatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type weatherAPIHour struct {
	TimeEpoch    int64               `json:"time_epoch"`
	TempC        float64             `json:"temp_c"`
	Condition    weatherAPICondition `json:"condition"`
	WindKph      float64             `json:"wind_kph"`
	WindDegree   float64             `json:"wind_degree"`
	Humidity     float64             `json:"humidity"`
	ChanceOfRain float64             `json:"chance_of_rain"`
	UV           float64             `json:"uv"`
}

type weatherAPIForecastDay struct {
	DateEpoch int64 `json:"date_epoch"`
	Day       struct {
		MaxTempC          float64             `json:"maxtemp_c"`
		MinTempC          float64             `json:"mintemp_c"`
		MaxWindKph        float64             `json:"maxwind_kph"`
		AvgHumidity       float64             `json:"avghumidity"`
		DailyChanceOfRain float64             `json:"daily_chance_of_rain"`
		Condition         weatherAPICondition `json:"condition"`
		UV                float64             `json:"uv"`
	} `json:"day"`
	Astro struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"astro"`
	Hour []weatherAPIHour `json:"hour"`
}

type weatherAPIResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
		TzID    string `json:"tz_id"`
	} `json:"location"`
	Current struct {
		TempC      float64             `json:"temp_c"`
		FeelsLikeC float64             `json:"feelslike_c"`
		Humidity   float64             `json:"humidity"`
		PressureMb float64             `json:"pressure_mb"`
		UV         float64             `json:"uv"`
		WindKph    float64             `json:"wind_kph"`
		WindDegree float64             `json:"wind_degree"`
		WindDir    string              `json:"wind_dir"`
		Condition  weatherAPICondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []weatherAPIForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, location string) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("weatherapi: %w", weather.ErrNotConfigured)
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", location)
	values.Set("days", fmt.Sprintf("%d", p.days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload weatherAPIResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/forecast.json?"+values.Encode(), &payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("weatherapi forecast: %w", err)
	}

	return mapWeatherAPI(payload, weather.Now())
}

// mapWeatherAPI converts a forecast.json payload. now decides which hours are
// still ahead and is interpreted in its own location.
func mapWeatherAPI(resp weatherAPIResponse, now time.Time) (weather.Forecast, error) {
	days := resp.Forecast.ForecastDay
	if len(days) == 0 {
		return weather.Forecast{}, ErrNoForecastDays
	}

	cur := resp.Current
	f := weather.Forecast{
		Source:   weather.SourceWeatherAPI,
		Timezone: weather.NamedZone(resp.Location.TzID),
		Current: weather.Current{
			Temp:        cur.TempC,
			FeelsLike:   cur.FeelsLikeC,
			Humidity:    cur.Humidity,
			Pressure:    cur.PressureMb,
			UVI:         weather.Float(cur.UV),
			WindSpeed:   weather.KphToMS(cur.WindKph),
			WindDeg:     weather.Float(cur.WindDegree),
			WindDir:     cur.WindDir,
			Weather:     weatherAPIConditions(cur.Condition),
			SunriseTime: days[0].Astro.Sunrise,
			SunsetTime:  days[0].Astro.Sunset,
		},
		Hourly: []weather.HourlyForecast{},
		Daily:  make([]weather.DailyForecast, 0, len(days)),
		Location: weather.Location{
			Name:     resp.Location.Name,
			Country:  resp.Location.Country,
			Region:   resp.Location.Region,
			Timezone: resp.Location.TzID,
		},
	}

	for _, day := range days {
		for _, h := range day.Hour {
			if !hourAhead(h.TimeEpoch, now) {
				continue
			}
			f.Hourly = append(f.Hourly, weather.HourlyForecast{
				Dt:        h.TimeEpoch,
				Temp:      h.TempC,
				Weather:   weatherAPIConditions(h.Condition),
				Pop:       h.ChanceOfRain / 100,
				Humidity:  h.Humidity,
				WindSpeed: weather.KphToMS(h.WindKph),
				WindDeg:   weather.Float(h.WindDegree),
				UV:        weather.Float(h.UV),
			})
		}

		f.Daily = append(f.Daily, weather.DailyForecast{
			Dt:          day.DateEpoch,
			Temp:        weather.TempRange{Min: day.Day.MinTempC, Max: day.Day.MaxTempC},
			Weather:     weatherAPIConditions(day.Day.Condition),
			Pop:         day.Day.DailyChanceOfRain / 100,
			Humidity:    day.Day.AvgHumidity,
			WindSpeed:   weather.KphToMS(day.Day.MaxWindKph),
			SunriseTime: day.Astro.Sunrise,
			SunsetTime:  day.Astro.Sunset,
			UV:          weather.Float(day.Day.UV),
			Source:      weather.SourceWeatherAPI,
		})
	}

	return f, nil
}

// hourAhead keeps hours from the current hour onwards: anything not before
// now, plus earlier minutes of the current hour today.
func hourAhead(epoch int64, now time.Time) bool {
	t := time.Unix(epoch, 0).In(now.Location())
	if !t.Before(now) {
		return true
	}
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd && t.Hour() >= now.Hour()
}

func weatherAPIConditions(c weatherAPICondition) []weather.Condition {
	return []weather.Condition{{
		Main:        c.Text,
		Description: c.Text,
		Icon:        weatherAPIIcon(c.Icon),
	}}
}

// weatherAPIIcon upgrades the 64px icon to 128px and makes the
// protocol-relative CDN path absolute.
func weatherAPIIcon(icon string) string {
	icon = strings.Replace(icon, "64x64", "128x128", 1)
	if strings.HasPrefix(icon, "//") {
		icon = "https:" + icon
	}
	return icon
}
