package orbit

import (
	"math"
)

// Elements holds the Keplerian elements of a circular orbit.
// Eccentricity is not modeled; the orbit radius equals the semi-major axis.
type Elements struct {
	SemiMajorAxisKm float64 // orbit radius from Earth's center, km
	InclinationDeg  float64 // [0, 180]
	RAANDeg         float64 // right ascension of the ascending node, [0, 360)
}

// Period returns the orbital period T = 2π·√(a³/μ) in seconds.
// Fails with *DomainError when the semi-major axis is non-finite or ≤ 0.
func (e Elements) Period() (float64, error) {
	if err := CheckFinite("semi_major_axis_km", e.SemiMajorAxisKm); err != nil {
		return 0, err
	}
	if e.SemiMajorAxisKm <= 0 {
		return 0, &DomainError{
			Quantity:   "semi_major_axis_km",
			Value:      e.SemiMajorAxisKm,
			Constraint: "must be > 0",
		}
	}
	a := e.SemiMajorAxisKm
	return 2 * math.Pi * math.Sqrt(a*a*a/EarthMu), nil
}

// MeanMotion returns the mean angular rate ω = 2π/T in rad/s.
func (e Elements) MeanMotion() (float64, error) {
	t, err := e.Period()
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi / t, nil
}

// AltitudeKm returns the constant orbit altitude above the spherical Earth.
func (e Elements) AltitudeKm() float64 {
	return e.SemiMajorAxisKm - EarthRadiusKm
}

// Validate checks the elements against the catalog ranges: altitude within
// [MinAltitudeKm, MaxAltitudeKm], inclination within [0, 180], RAAN within
// [0, 360). The propagator assumes elements that passed this check.
func (e Elements) Validate() error {
	for _, c := range []struct {
		quantity string
		value    float64
	}{
		{"semi_major_axis_km", e.SemiMajorAxisKm},
		{"inclination_deg", e.InclinationDeg},
		{"raan_deg", e.RAANDeg},
	} {
		if err := CheckFinite(c.quantity, c.value); err != nil {
			return err
		}
	}

	if alt := e.AltitudeKm(); alt < MinAltitudeKm || alt > MaxAltitudeKm {
		return &DomainError{
			Quantity:   "altitude_km",
			Value:      alt,
			Constraint: "must be within [160, 40000]",
		}
	}
	if e.InclinationDeg < 0 || e.InclinationDeg > 180 {
		return &DomainError{
			Quantity:   "inclination_deg",
			Value:      e.InclinationDeg,
			Constraint: "must be within [0, 180]",
		}
	}
	if e.RAANDeg < 0 || e.RAANDeg >= 360 {
		return &DomainError{
			Quantity:   "raan_deg",
			Value:      e.RAANDeg,
			Constraint: "must be within [0, 360)",
		}
	}
	return nil
}
