// Package catalog loads the YAML satellite catalog and performs the
// range validation the propagation engine assumes has already happened:
// altitude band, inclination and RAAN domains, initial longitude range,
// and unique satellite IDs.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orbitwatch/orbitwatch/internal/orbit"
	"github.com/orbitwatch/orbitwatch/internal/proximity"
)

// Load reads and validates a catalog file. Any invalid satellite rejects
// the whole file; the engine never sees unvalidated elements.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every satellite entry against the catalog ranges.
func (c *Catalog) Validate() error {
	if len(c.Satellites) == 0 {
		return fmt.Errorf("catalog has no satellites")
	}

	seen := make(map[string]bool, len(c.Satellites))
	for i, sat := range c.Satellites {
		if sat.ID == "" {
			return fmt.Errorf("satellite %d: missing id", i)
		}
		if seen[sat.ID] {
			return fmt.Errorf("satellite %q: duplicate id", sat.ID)
		}
		seen[sat.ID] = true

		if sat.Epoch.IsZero() {
			return fmt.Errorf("satellite %q: missing epoch", sat.ID)
		}
		if sat.InitialLongitudeDeg < -180 || sat.InitialLongitudeDeg > 180 {
			return fmt.Errorf("satellite %q: initial_longitude_deg %g outside [-180, 180]",
				sat.ID, sat.InitialLongitudeDeg)
		}
		if err := sat.Elements().Validate(); err != nil {
			return fmt.Errorf("satellite %q: %w", sat.ID, err)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Elements converts the catalogued orbit to Keplerian elements.
func (s SatelliteSpec) Elements() orbit.Elements {
	return orbit.Elements{
		SemiMajorAxisKm: orbit.EarthRadiusKm + s.Orbit.AltitudeKm,
		InclinationDeg:  s.Orbit.InclinationDeg,
		RAANDeg:         s.Orbit.RAANDeg,
	}
}

// ProximitySatellites converts the catalog to the scanner's input records.
func (c *Catalog) ProximitySatellites() []proximity.Satellite {
	sats := make([]proximity.Satellite, 0, len(c.Satellites))
	for _, s := range c.Satellites {
		sats = append(sats, proximity.Satellite{
			ID:                  s.ID,
			Elements:            s.Elements(),
			InitialLongitudeDeg: s.InitialLongitudeDeg,
			Epoch:               s.Epoch,
		})
	}
	return sats
}

// FindSatellite returns the catalogued satellite with the given ID.
func (c *Catalog) FindSatellite(id string) (SatelliteSpec, error) {
	for _, s := range c.Satellites {
		if s.ID == id {
			return s, nil
		}
	}
	return SatelliteSpec{}, fmt.Errorf("satellite %q not in catalog", id)
}
