package weather

import "math"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassDirection maps a bearing in degrees to one of 16 compass codes.
func CompassDirection(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(roundHalfUp(deg/22.5)) % len(compassPoints)
	return compassPoints[idx]
}

// KphToMS converts km/h to m/s.
func KphToMS(kph float64) float64 {
	return kph / 3.6
}

// roundHalfUp rounds .5 towards positive infinity (JavaScript Math.round).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
