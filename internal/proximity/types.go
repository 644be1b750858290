package proximity

import (
	"fmt"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/orbit"
)

// Satellite is one scan participant: an identifier, validated orbital
// elements, and the reference epoch at which the satellite's ground
// longitude was InitialLongitudeDeg.
type Satellite struct {
	ID                  string
	Elements            orbit.Elements
	InitialLongitudeDeg float64
	Epoch               time.Time
}

// Query describes one proximity scan over [Start, End] with grid spacing
// Step. ThresholdKm is required and explicit; there is no default.
type Query struct {
	Start       time.Time
	End         time.Time
	Step        time.Duration
	ThresholdKm float64
	Satellites  []Satellite
}

// Event is a detected proximity: two satellites closer than the query
// threshold at one grid instant. SatelliteA sorts before SatelliteB, so an
// unordered pair appears exactly once. Events are plain values; the scanner
// keeps no history across calls.
type Event struct {
	SatelliteA string         `json:"satellite_a"`
	SatelliteB string         `json:"satellite_b"`
	Time       time.Time      `json:"time"`
	PositionA  orbit.Geodetic `json:"position_a"`
	PositionB  orbit.Geodetic `json:"position_b"`
	DistanceKm float64        `json:"distance_km"`
}

// Midpoint returns a single representative location for the event.
func (e Event) Midpoint() orbit.Geodetic {
	return e.PositionA.Midpoint(e.PositionB)
}

// InvalidRangeError reports a malformed scan window or step. Fatal to the
// scan call; never retried.
type InvalidRangeError struct {
	Field  string // "end_time" or "step"
	Detail string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid scan range: %s %s", e.Field, e.Detail)
}
