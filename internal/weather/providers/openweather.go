package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultZipCountry qualifies all-digit locations sent to OpenWeatherMap.
const DefaultZipCountry = "IN"

var zipPattern = regexp.MustCompile(`^\d+$`)

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap's free
// current-weather and 5 day / 3 hour forecast endpoints.
type OpenWeatherProvider struct {
	name       string
	apiKey     string
	baseURL    string
	iconURL    string
	zipCountry string
	bucketOpts weather.BucketOptions
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func NewOpenWeatherProvider(
	httpCfg HTTPClientConfig,
	apiKey, zipCountry string,
	bucketOpts weather.BucketOptions,
	logger *slog.Logger,
) *OpenWeatherProvider {
	if zipCountry == "" {
		zipCountry = DefaultZipCountry
	}
	return &OpenWeatherProvider{
		name:       string(weather.SourceOpenWeatherMap),
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org/data/2.5",
		iconURL:    "https://openweathermap.org/img/wn",
		zipCountry: zipCountry,
		bucketOpts: bucketOpts,
		httpCfg:    httpCfg,
		circuit:    newCircuitBreaker("openweather"),
		logger:     logger,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Configured() bool {
	return p.apiKey != ""
}

type owmWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type owmCurrent struct {
	Name    string       `json:"name"`
	Main    owmMain      `json:"main"`
	Weather []owmWeather `json:"weather"`
	Wind    owmWind      `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
}

type owmForecast struct {
	List []struct {
		Dt      int64        `json:"dt"`
		Main    owmMain      `json:"main"`
		Weather []owmWeather `json:"weather"`
		Wind    owmWind      `json:"wind"`
		Pop     float64      `json:"pop"`
	} `json:"list"`
}

// FetchForecast issues the current-weather and forecast calls concurrently.
// Any failure in either call is reported as weather.ErrNoData.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, location string) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("openweather: %w", weather.ErrNotConfigured)
	}

	query := p.locationQuery(location)

	var (
		current  owmCurrent
		forecast owmForecast
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return getJSON(gCtx, p.httpCfg, p.circuit, p.baseURL+"/weather?"+query, &current)
	})
	g.Go(func() error {
		return getJSON(gCtx, p.httpCfg, p.circuit, p.baseURL+"/forecast?"+query, &forecast)
	})
	if err := g.Wait(); err != nil {
		p.logger.WarnContext(ctx, "openweather request failed", "location", location, "error", err)
		return weather.Forecast{}, fmt.Errorf("openweather: %w: %v", weather.ErrNoData, err)
	}

	return p.mapOpenWeather(current, forecast, weather.Now()), nil
}

func (p *OpenWeatherProvider) locationQuery(location string) string {
	values := url.Values{}
	if zipPattern.MatchString(location) {
		values.Set("zip", location+","+p.zipCountry)
	} else {
		values.Set("q", location)
	}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	return values.Encode()
}

// mapOpenWeather merges both payloads. The hourly strip stops two days after
// now; the daily summary buckets the full forecast list.
func (p *OpenWeatherProvider) mapOpenWeather(cur owmCurrent, fc owmForecast, now time.Time) weather.Forecast {
	cutoff := now.AddDate(0, 0, 2)

	samples := make([]weather.HourlyForecast, 0, len(fc.List))
	hourly := make([]weather.HourlyForecast, 0, len(fc.List))
	for _, item := range fc.List {
		s := weather.HourlyForecast{
			Dt:        item.Dt,
			Temp:      item.Main.Temp,
			Weather:   p.conditions(item.Weather),
			Pop:       item.Pop,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			WindDeg:   weather.Float(item.Wind.Deg),
		}
		samples = append(samples, s)
		if time.Unix(item.Dt, 0).Before(cutoff) {
			hourly = append(hourly, s)
		}
	}

	sun := weather.SunTimes{
		Sunrise:       cur.Sys.Sunrise,
		Sunset:        cur.Sys.Sunset,
		OffsetSeconds: cur.Timezone,
	}

	return weather.Forecast{
		Source:   weather.SourceOpenWeatherMap,
		Timezone: weather.OffsetZone(cur.Timezone),
		Current: weather.Current{
			Temp:        cur.Main.Temp,
			FeelsLike:   cur.Main.FeelsLike,
			Humidity:    cur.Main.Humidity,
			Pressure:    cur.Main.Pressure,
			WindSpeed:   cur.Wind.Speed,
			WindDeg:     weather.Float(cur.Wind.Deg),
			WindDir:     weather.CompassDirection(cur.Wind.Deg),
			Weather:     p.conditions(cur.Weather),
			Sunrise:     cur.Sys.Sunrise,
			Sunset:      cur.Sys.Sunset,
			SunriseTime: weather.FormatLocalTime(cur.Sys.Sunrise, cur.Timezone),
			SunsetTime:  weather.FormatLocalTime(cur.Sys.Sunset, cur.Timezone),
		},
		Hourly: hourly,
		Daily:  weather.BucketDaily(samples, sun, p.bucketOpts),
		Location: weather.Location{
			Name:    cur.Name,
			Country: cur.Sys.Country,
		},
	}
}

// conditions keeps only the first entry and turns its icon code into a URL.
func (p *OpenWeatherProvider) conditions(ws []owmWeather) []weather.Condition {
	if len(ws) == 0 {
		return []weather.Condition{{}}
	}
	w := ws[0]
	return []weather.Condition{{
		Main:        w.Main,
		Description: w.Description,
		Icon:        fmt.Sprintf("%s/%s@2x.png", p.iconURL, w.Icon),
	}}
}
