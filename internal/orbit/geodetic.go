package orbit

import "math"

// Geodetic is a latitude/longitude/altitude position above the spherical
// Earth. Produced fresh per propagation call and never mutated.
type Geodetic struct {
	LatitudeDeg  float64 // [-90, 90]
	LongitudeDeg float64 // [-180, 180)
	AltitudeKm   float64 // above EarthRadiusKm, ≥ 0
}

// Cartesian converts the position to Earth-centered Cartesian coordinates
// (km) using the spherical-Earth radius EarthRadiusKm + altitude.
func (g Geodetic) Cartesian() (x, y, z float64) {
	r := EarthRadiusKm + g.AltitudeKm

	lat := g.LatitudeDeg * math.Pi / 180.0
	lon := g.LongitudeDeg * math.Pi / 180.0

	x = r * math.Cos(lat) * math.Cos(lon)
	y = r * math.Cos(lat) * math.Sin(lon)
	z = r * math.Sin(lat)
	return x, y, z
}

// DistanceTo returns the Euclidean 3D distance in km between g and other
// via Cartesian conversion. Non-finite inputs fail with *DomainError.
func (g Geodetic) DistanceTo(other Geodetic) (float64, error) {
	if err := g.checkFinite(); err != nil {
		return 0, err
	}
	if err := other.checkFinite(); err != nil {
		return 0, err
	}

	x1, y1, z1 := g.Cartesian()
	x2, y2, z2 := other.Cartesian()

	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
}

// Midpoint returns the component-wise midpoint between g and other,
// a representative location for a proximity between the two positions.
func (g Geodetic) Midpoint(other Geodetic) Geodetic {
	return Geodetic{
		LatitudeDeg:  (g.LatitudeDeg + other.LatitudeDeg) / 2,
		LongitudeDeg: (g.LongitudeDeg + other.LongitudeDeg) / 2,
		AltitudeKm:   (g.AltitudeKm + other.AltitudeKm) / 2,
	}
}

func (g Geodetic) checkFinite() error {
	for _, c := range []struct {
		quantity string
		value    float64
	}{
		{"latitude_deg", g.LatitudeDeg},
		{"longitude_deg", g.LongitudeDeg},
		{"altitude_km", g.AltitudeKm},
	} {
		if err := CheckFinite(c.quantity, c.value); err != nil {
			return err
		}
	}
	return nil
}
