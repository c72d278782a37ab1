package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	// Server-side API keys. The NEXT_PUBLIC_ variants are the names older
	// deployments exported to the browser and are only read as a fallback.
	WeatherAPIKey           string `envconfig:"WEATHER_API_KEY"`
	LegacyWeatherAPIKey     string `envconfig:"NEXT_PUBLIC_WEATHER_API_KEY"`
	OpenWeatherAPIKey       string `envconfig:"OPENWEATHER_API_KEY"`
	LegacyOpenWeatherAPIKey string `envconfig:"NEXT_PUBLIC_OPENWEATHER_API_KEY"`

	Port            string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// Outbound provider calls.
	HTTPTimeout           time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	ProviderMaxRetries    int           `envconfig:"PROVIDER_MAX_RETRIES" default:"0" validate:"gte=0,lte=5"`
	ProviderRetryInterval time.Duration `envconfig:"PROVIDER_RETRY_INTERVAL" default:"500ms" validate:"gt=0"`
	ProviderRetryMaxWait  time.Duration `envconfig:"PROVIDER_RETRY_MAX_WAIT" default:"5s" validate:"gtefield=ProviderRetryInterval"`

	WeatherAPIDays   int    `envconfig:"WEATHERAPI_FORECAST_DAYS" default:"3" validate:"gte=1,lte=14"`
	ZipCountry       string `envconfig:"OPENWEATHER_ZIP_COUNTRY" default:"IN" validate:"len=2"`
	HumidityTrueMean bool   `envconfig:"HUMIDITY_TRUE_MEAN" default:"false"`

	// Upstream status probe; a zero interval disables it.
	ProbeInterval      time.Duration `envconfig:"PROBE_INTERVAL" default:"0s" validate:"gte=0"`
	ProbeLocation      string        `envconfig:"PROBE_LOCATION" default:"London"`
	ProbeHistory       int           `envconfig:"PROBE_HISTORY" default:"60" validate:"gte=1"`
	ProbeHistoryMaxAge time.Duration `envconfig:"PROBE_HISTORY_MAX_AGE" default:"24h" validate:"gte=0"`
}

// MockMode reports whether neither provider key is present.
func (c *AppConfig) MockMode() bool {
	return c.WeatherAPIKey == "" && c.OpenWeatherAPIKey == ""
}

// Load reads configuration from the environment (and a .env file when present).
func Load() (*AppConfig, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.WeatherAPIKey == "" {
		cfg.WeatherAPIKey = cfg.LegacyWeatherAPIKey
	}
	if cfg.OpenWeatherAPIKey == "" {
		cfg.OpenWeatherAPIKey = cfg.LegacyOpenWeatherAPIKey
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
