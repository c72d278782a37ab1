package weather

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package time source; tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// DefaultClockMinutes is what ParseClock returns for anything it cannot read (6:00 AM).
const DefaultClockMinutes = 6 * 60

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)`)

// ParseClock converts "H:MM AM|PM" into minutes since midnight. Unreadable
// input yields DefaultClockMinutes rather than an error.
func ParseClock(s string) int {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultClockMinutes
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	switch period := strings.ToUpper(m[3]); {
	case period == "PM" && hours != 12:
		hours += 12
	case period == "AM" && hours == 12:
		hours = 0
	}
	return hours*60 + minutes
}

// FormatMinutes renders minutes since midnight as "H:MM AM|PM", wrapping at 24h.
func FormatMinutes(total int) string {
	total %= minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	hours := total / 60
	minutes := total % 60
	return formatTwelveHour(hours, minutes)
}

// AddMinutes shifts a 12-hour clock string by delta minutes.
func AddMinutes(s string, delta int) string {
	return FormatMinutes(ParseClock(s) + delta)
}

// LocalClock converts a UTC epoch plus an offset into a 24-hour "HH:MM" wall-clock string.
func LocalClock(epoch int64, offsetSeconds int) string {
	t := time.Unix(epoch+int64(offsetSeconds), 0).UTC()
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// To12Hour converts "HH:MM" (24h) into "H:MM AM|PM".
func To12Hour(s string) string {
	hh, mm, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return formatTwelveHour(hours, minutes)
}

// FormatLocalTime is LocalClock rendered in 12-hour form.
func FormatLocalTime(epoch int64, offsetSeconds int) string {
	return To12Hour(LocalClock(epoch, offsetSeconds))
}

func formatTwelveHour(hours, minutes int) string {
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}
