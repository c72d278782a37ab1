package weather

import (
	"math/rand/v2"
	"time"
)

const mockIcon = "https://openweathermap.org/img/wn/01d@2x.png"

func clearSky() []Condition {
	return []Condition{{Main: "Clear", Description: "clear sky", Icon: mockIcon}}
}

// jitter returns a value in [base, base+span).
func jitter(base, span float64) float64 {
	return base + rand.Float64()*span
}

// MockForecast builds placeholder data for name. It performs no I/O and always
// returns a structurally complete forecast: 24 hourly and 5 daily entries.
func MockForecast(name string, now time.Time) Forecast {
	ts := now.Unix()
	const hour, day = int64(time.Hour / time.Second), int64(24 * time.Hour / time.Second)

	hourly := make([]HourlyForecast, 24)
	for i := range hourly {
		hourly[i] = HourlyForecast{
			Dt:        ts + int64(i)*hour,
			Temp:      jitter(20, 10),
			Weather:   clearSky(),
			Pop:       jitter(0, 0.3),
			Humidity:  jitter(60, 20),
			WindSpeed: jitter(2, 3),
			WindDeg:   Float(jitter(0, 360)),
			UV:        Float(jitter(0, 8)),
		}
	}

	daily := make([]DailyForecast, MaxDailyEntries)
	for i := range daily {
		offset := int64(i) * day
		daily[i] = DailyForecast{
			Dt:          ts + offset,
			Temp:        TempRange{Min: jitter(15, 5), Max: jitter(25, 8)},
			Weather:     clearSky(),
			Pop:         jitter(0, 0.4),
			Humidity:    jitter(60, 20),
			WindSpeed:   jitter(2, 4),
			Sunrise:     ts + offset - hour,
			Sunset:      ts + offset + 2*hour,
			SunriseTime: "6:30 AM",
			SunsetTime:  "6:45 PM",
			UV:          Float(jitter(0, 8)),
			Source:      SourceMock,
		}
	}

	return Forecast{
		Source:   SourceMock,
		Timezone: NamedZone("UTC"),
		Current: Current{
			Temp:        22,
			FeelsLike:   25,
			Humidity:    65,
			Pressure:    1013,
			UVI:         Float(5),
			WindSpeed:   3.5,
			WindDeg:     Float(180),
			WindDir:     "S",
			Weather:     clearSky(),
			Sunrise:     ts - hour,
			Sunset:      ts + 2*hour,
			SunriseTime: "6:30 AM",
			SunsetTime:  "6:45 PM",
		},
		Hourly: hourly,
		Daily:  daily,
		Location: Location{
			Name:     name,
			Country:  "Mock Country",
			Region:   "Mock Region",
			Timezone: "UTC",
		},
	}
}
