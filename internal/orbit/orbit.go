// Package orbit holds the Keplerian element and geodetic coordinate value
// types shared by the propagation and proximity packages, together with the
// physical constants of the simplified circular-orbit model.
//
// Earth is treated as a sphere of radius EarthRadiusKm; altitudes are
// measured above that sphere. All types are immutable values with pure
// derived operations and are safe for concurrent use.
package orbit

// Physical constants.
const (
	// EarthMu is Earth's standard gravitational parameter in km³/s².
	EarthMu = 398600.4418

	// EarthRadiusKm is the mean spherical Earth radius in km.
	EarthRadiusKm = 6371.0

	// OmegaEarth is Earth's rotation rate in rad/s (IAU value).
	OmegaEarth = 7.292115146706979e-5
)

// Operational altitude band for catalogued orbits, km above EarthRadiusKm.
// Enforced by the catalog loader before elements reach the propagator.
const (
	MinAltitudeKm = 160.0
	MaxAltitudeKm = 40000.0
)
