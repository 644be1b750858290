package orbit

import "math"

// NormalizeLongitudeDeg wraps a longitude in degrees into [-180, 180).
func NormalizeLongitudeDeg(lonDeg float64) float64 {
	lon := math.Mod(lonDeg+180.0, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon - 180.0
}

// WrapTwoPi wraps an angle in radians into [0, 2π).
func WrapTwoPi(rad float64) float64 {
	wrapped := math.Mod(rad, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}
