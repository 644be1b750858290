// Package propagation computes satellite positions from Keplerian orbital
// elements using a simplified circular-orbit model: the true anomaly grows
// linearly at the mean angular rate, inclination and RAAN rotate the
// orbital-plane position into latitude/longitude, and a rotation correction
// accounts for the Earth turning underneath the orbit.
//
// Propagation is a pure function of its inputs: no I/O, no shared state,
// safe for concurrent invocation with different inputs.
package propagation

import (
	"math"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/orbit"
)

// Propagator computes a satellite's geodetic position from orbital elements
// and elapsed time since the reference epoch. Alternative models (e.g.
// perturbed propagators) implement the same contract.
type Propagator interface {
	Propagate(el orbit.Elements, initialLonDeg, elapsedSec float64) (orbit.Geodetic, error)
}

// siderealDaySec is the duration of one Earth rotation, 2π/ω⊕.
const siderealDaySec = 2 * math.Pi / orbit.OmegaEarth

// Keplerian is the circular-orbit propagator. The zero value is ready to use.
type Keplerian struct{}

// Propagate returns the satellite position elapsedSec seconds after the
// epoch at which the satellite's ground longitude was initialLonDeg.
// elapsedSec may be negative (a time before the epoch).
//
// Angles are reduced modulo the orbital period and the sidereal day before
// any trigonometry, so very large elapsed times do not accumulate
// floating-point error.
func (Keplerian) Propagate(el orbit.Elements, initialLonDeg, elapsedSec float64) (orbit.Geodetic, error) {
	if err := orbit.CheckFinite("initial_longitude_deg", initialLonDeg); err != nil {
		return orbit.Geodetic{}, err
	}
	if err := orbit.CheckFinite("elapsed_seconds", elapsedSec); err != nil {
		return orbit.Geodetic{}, err
	}

	period, err := el.Period()
	if err != nil {
		return orbit.Geodetic{}, err
	}
	meanMotion := 2 * math.Pi / period

	// True anomaly from the ascending node at epoch.
	nu := orbit.WrapTwoPi(meanMotion * math.Mod(elapsedSec, period))

	inclRad := el.InclinationDeg * math.Pi / 180.0

	// Orbital-plane position rotated by inclination: sub-satellite latitude
	// and the longitude swept along the ground track since the node.
	latRad := math.Asin(math.Sin(inclRad) * math.Sin(nu))
	trackLonRad := math.Atan2(math.Cos(inclRad)*math.Sin(nu), math.Cos(nu))

	// Earth rotation carries the ground track westward over elapsed time.
	rotDeg := orbit.OmegaEarth * math.Mod(elapsedSec, siderealDaySec) * 180.0 / math.Pi

	lonDeg := orbit.NormalizeLongitudeDeg(
		initialLonDeg + el.RAANDeg + trackLonRad*180.0/math.Pi - rotDeg,
	)

	return orbit.Geodetic{
		LatitudeDeg:  latRad * 180.0 / math.Pi,
		LongitudeDeg: lonDeg,
		AltitudeKm:   el.AltitudeKm(),
	}, nil
}

// PositionAt propagates to an absolute instant: elapsed time is the
// difference between at and the satellite's reference epoch.
func PositionAt(p Propagator, el orbit.Elements, initialLonDeg float64, epoch, at time.Time) (orbit.Geodetic, error) {
	return p.Propagate(el, initialLonDeg, at.Sub(epoch).Seconds())
}
