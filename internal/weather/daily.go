package weather

import (
	"math"
	"time"
)

// BucketOptions tunes daily aggregation.
type BucketOptions struct {
	// TrueMeanHumidity averages every sample equally. When false each new sample
	// is folded in as round((avg+h)/2), which weights recent samples more heavily.
	TrueMeanHumidity bool
}

// SunTimes anchors the first bucketed day's sunrise and sunset.
type SunTimes struct {
	Sunrise       int64
	Sunset        int64
	OffsetSeconds int
}

type dayBucket struct {
	first       HourlyForecast
	temps       []float64
	pop         float64
	humidity    float64
	humiditySum float64
	windSpeed   float64
	hourly      []HourlyForecast
}

// BucketDaily groups 3-hourly samples into calendar days keyed by UTC date, in
// encounter order, and returns at most MaxDailyEntries day summaries. Only the
// first day's sunrise and sunset are known; later days drift from it by a
// minute or two and are flagged as estimated.
func BucketDaily(samples []HourlyForecast, sun SunTimes, opts BucketOptions) []DailyForecast {
	var (
		order   []string
		buckets = make(map[string]*dayBucket)
	)

	for _, s := range samples {
		key := time.Unix(s.Dt, 0).UTC().Format(time.DateOnly)

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{
				first:     s,
				pop:       s.Pop,
				humidity:  s.Humidity,
				windSpeed: s.WindSpeed,
			}
			buckets[key] = b
			order = append(order, key)
		}

		b.hourly = append(b.hourly, s)
		b.temps = append(b.temps, s.Temp)
		if s.Pop > b.pop {
			b.pop = s.Pop
		}
		b.humidity = roundHalfUp((b.humidity + s.Humidity) / 2)
		b.humiditySum += s.Humidity
		if s.WindSpeed > b.windSpeed {
			b.windSpeed = s.WindSpeed
		}
	}

	if len(order) > MaxDailyEntries {
		order = order[:MaxDailyEntries]
	}

	baseSunrise := FormatLocalTime(sun.Sunrise, sun.OffsetSeconds)
	baseSunset := FormatLocalTime(sun.Sunset, sun.OffsetSeconds)

	days := make([]DailyForecast, 0, len(order))
	for i, key := range order {
		b := buckets[key]

		humidity := b.humidity
		if opts.TrueMeanHumidity {
			humidity = roundHalfUp(b.humiditySum / float64(len(b.hourly)))
		}

		sunriseDrift, sunsetDrift := sunDrift(i)
		days = append(days, DailyForecast{
			Dt:               b.first.Dt,
			Temp:             tempRange(b.temps),
			Weather:          firstCondition(b.first.Weather),
			Pop:              b.pop,
			Humidity:         humidity,
			WindSpeed:        b.windSpeed,
			Sunrise:          sun.Sunrise + int64(i)*60,
			Sunset:           sun.Sunset + int64(i)*60,
			SunriseTime:      AddMinutes(baseSunrise, sunriseDrift),
			SunsetTime:       AddMinutes(baseSunset, sunsetDrift),
			SunriseEstimated: i > 0,
			SunsetEstimated:  i > 0,
			Source:           SourceOpenWeatherMap,
			Hourly:           b.hourly,
		})
	}
	return days
}

// sunDrift returns the sunrise and sunset shift in minutes for day index i.
func sunDrift(i int) (sunrise, sunset int) {
	switch i {
	case 0, 1:
		return 0, 0
	case 2:
		return 0, 1
	case 3:
		return 1, 2
	default:
		return 2, 3
	}
}

func tempRange(temps []float64) TempRange {
	r := TempRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, t := range temps {
		r.Min = math.Min(r.Min, t)
		r.Max = math.Max(r.Max, t)
	}
	return r
}

// firstCondition keeps the one-element condition invariant.
func firstCondition(cs []Condition) []Condition {
	if len(cs) == 0 {
		return []Condition{{}}
	}
	return []Condition{cs[0]}
}
