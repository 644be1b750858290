package catalog

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML decoding from strings like "30s".
type Duration time.Duration

// UnmarshalYAML decodes a duration string via time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// OrbitSpec describes one orbit in the catalog file. Altitude is given
// above the spherical Earth radius, matching operator conventions; the
// semi-major axis is derived.
type OrbitSpec struct {
	AltitudeKm     float64 `yaml:"altitude_km"`
	InclinationDeg float64 `yaml:"inclination_deg"`
	RAANDeg        float64 `yaml:"raan_deg"`
}

// SatelliteSpec describes one catalogued satellite.
type SatelliteSpec struct {
	ID                  string    `yaml:"id"`
	Epoch               time.Time `yaml:"epoch"`
	InitialLongitudeDeg float64   `yaml:"initial_longitude_deg"`
	Orbit               OrbitSpec `yaml:"orbit"`
}

// ScanSpec holds default scan parameters for the scan subcommand. All
// fields can be overridden by flags; the threshold has no built-in default
// and must come from this section or a flag.
type ScanSpec struct {
	Start       time.Time `yaml:"start"`
	End         time.Time `yaml:"end"`
	Step        Duration  `yaml:"step"`
	ThresholdKm float64   `yaml:"threshold_km"`
}

// Catalog is the root of the catalog file.
type Catalog struct {
	Satellites []SatelliteSpec `yaml:"satellites"`
	Scan       ScanSpec        `yaml:"scan"`
	Workers    int             `yaml:"workers"`
}
