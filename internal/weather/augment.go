package weather

// augmentFromDays is the primary day count that triggers borrowing two more days.
const augmentFromDays = 3

// fallbackSunset seeds the drift when the last primary day has no sunset string.
const fallbackSunset = "6:30 PM"

// AugmentDaily extends a 3-day primary forecast to 5 days using the secondary
// provider's 4th and 5th days. Borrowed days keep the last primary day's
// sunrise, push its sunset out by one minute per day and are tagged
// SourceEstimated. Any other primary length is returned unchanged.
func AugmentDaily(primary, secondary []DailyForecast) []DailyForecast {
	if len(primary) != augmentFromDays || len(secondary) == 0 {
		return primary
	}

	last := primary[len(primary)-1]
	sunset := last.SunsetTime
	if sunset == "" {
		sunset = fallbackSunset
	}

	out := make([]DailyForecast, 0, MaxDailyEntries)
	out = append(out, primary...)
	for i, idx := range []int{3, 4} {
		day := secondary[len(secondary)-1]
		if idx < len(secondary) {
			day = secondary[idx]
		}
		day.SunriseTime = last.SunriseTime
		day.SunsetTime = AddMinutes(sunset, i+1)
		day.SunriseEstimated = true
		day.SunsetEstimated = true
		day.Source = SourceEstimated
		day.UV = Float(0)
		out = append(out, day)
	}
	return out
}

func capDaily(days []DailyForecast) []DailyForecast {
	if len(days) > MaxDailyEntries {
		return days[:MaxDailyEntries]
	}
	return days
}
