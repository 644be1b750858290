package propagation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/orbit"
)

// TestPropagateEpochIdentity verifies the t = 0 contract: altitude equals
// a − base radius, latitude is zero (the satellite sits at its ascending
// node), and for node-referenced orbits (RAAN 0) the longitude is exactly
// the supplied initial longitude.
func TestPropagateEpochIdentity(t *testing.T) {
	tests := []struct {
		name       string
		elements   orbit.Elements
		initialLon float64
	}{
		{"equatorial", orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 0, RAANDeg: 0}, 0},
		{"equatorial offset", orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 0, RAANDeg: 0}, 45},
		{"inclined", orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 51.6, RAANDeg: 0}, -120},
		{"polar", orbit.Elements{SemiMajorAxisKm: 7151, InclinationDeg: 90, RAANDeg: 0}, 179},
		{"retrograde", orbit.Elements{SemiMajorAxisKm: 7151, InclinationDeg: 180, RAANDeg: 0}, -45},
	}

	const tol = 1e-9
	var prop Keplerian
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := prop.Propagate(tt.elements, tt.initialLon, 0)
			if err != nil {
				t.Fatalf("Propagate() error: %v", err)
			}

			wantAlt := tt.elements.SemiMajorAxisKm - orbit.EarthRadiusKm
			if math.Abs(pos.AltitudeKm-wantAlt) > tol {
				t.Errorf("AltitudeKm = %.12f, want %.12f", pos.AltitudeKm, wantAlt)
			}
			if math.Abs(pos.LatitudeDeg) > tol {
				t.Errorf("LatitudeDeg = %.12f, want 0", pos.LatitudeDeg)
			}
			wantLon := orbit.NormalizeLongitudeDeg(tt.initialLon)
			if math.Abs(pos.LongitudeDeg-wantLon) > tol {
				t.Errorf("LongitudeDeg = %.12f, want %.12f", pos.LongitudeDeg, wantLon)
			}
		})
	}
}

// TestPropagateRAANShiftsNode verifies that RAAN offsets the epoch
// longitude by the node angle.
func TestPropagateRAANShiftsNode(t *testing.T) {
	el := orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 51.6, RAANDeg: 90}

	pos, err := Keplerian{}.Propagate(el, 10, 0)
	if err != nil {
		t.Fatalf("Propagate() error: %v", err)
	}
	if math.Abs(pos.LongitudeDeg-100) > 1e-9 {
		t.Errorf("LongitudeDeg = %.12f, want 100 (initial 10 + RAAN 90)", pos.LongitudeDeg)
	}
}

// TestPropagateOutputRanges verifies latitude/longitude domains for a wide
// spread of elapsed times, including negative and very large values.
func TestPropagateOutputRanges(t *testing.T) {
	elements := []orbit.Elements{
		{SemiMajorAxisKm: 6871, InclinationDeg: 0, RAANDeg: 0},
		{SemiMajorAxisKm: 6871, InclinationDeg: 51.6, RAANDeg: 247.5},
		{SemiMajorAxisKm: 7151, InclinationDeg: 98.7, RAANDeg: 10},
		{SemiMajorAxisKm: 42164, InclinationDeg: 180, RAANDeg: 359},
	}
	elapsed := []float64{
		0, 1, 59.5, 3600, 5668.1, 86400, 1e7, 1e12, -1, -3600, -1e9,
	}

	var prop Keplerian
	for _, el := range elements {
		for _, dt := range elapsed {
			pos, err := prop.Propagate(el, 42.5, dt)
			if err != nil {
				t.Fatalf("Propagate(a=%g, dt=%g) error: %v", el.SemiMajorAxisKm, dt, err)
			}
			if pos.LatitudeDeg < -90 || pos.LatitudeDeg > 90 {
				t.Errorf("a=%g dt=%g: LatitudeDeg = %g outside [-90, 90]", el.SemiMajorAxisKm, dt, pos.LatitudeDeg)
			}
			if pos.LongitudeDeg < -180 || pos.LongitudeDeg >= 180 {
				t.Errorf("a=%g dt=%g: LongitudeDeg = %g outside [-180, 180)", el.SemiMajorAxisKm, dt, pos.LongitudeDeg)
			}
			if math.IsNaN(pos.LatitudeDeg) || math.IsNaN(pos.LongitudeDeg) || math.IsNaN(pos.AltitudeKm) {
				t.Errorf("a=%g dt=%g: NaN in output %+v", el.SemiMajorAxisKm, dt, pos)
			}
		}
	}
}

// TestPropagateDeterministic verifies bit-identical results for repeated
// identical inputs.
func TestPropagateDeterministic(t *testing.T) {
	el := orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 51.6, RAANDeg: 123.4}
	var prop Keplerian

	first, err := prop.Propagate(el, -77.2, 123456.789)
	if err != nil {
		t.Fatalf("Propagate() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := prop.Propagate(el, -77.2, 123456.789)
		if err != nil {
			t.Fatalf("Propagate() error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: %+v != %+v", i, again, first)
		}
	}
}

// TestPropagateDomainErrors verifies the defensive checks on raw inputs.
func TestPropagateDomainErrors(t *testing.T) {
	valid := orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 0, RAANDeg: 0}

	tests := []struct {
		name    string
		el      orbit.Elements
		lon     float64
		elapsed float64
	}{
		{"negative semi-major axis", orbit.Elements{SemiMajorAxisKm: -1}, 0, 0},
		{"zero semi-major axis", orbit.Elements{SemiMajorAxisKm: 0}, 0, 0},
		{"NaN initial longitude", valid, math.NaN(), 0},
		{"Inf elapsed", valid, 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Keplerian{}.Propagate(tt.el, tt.lon, tt.elapsed)
			var derr *orbit.DomainError
			if !errors.As(err, &derr) {
				t.Fatalf("Propagate() error = %v, want *orbit.DomainError", err)
			}
		})
	}
}

// TestPropagateEquatorialStaysOnEquator: with zero inclination the
// sub-satellite point never leaves the equator.
func TestPropagateEquatorialStaysOnEquator(t *testing.T) {
	el := orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 0, RAANDeg: 0}
	var prop Keplerian

	for dt := 0.0; dt <= 12000; dt += 500 {
		pos, err := prop.Propagate(el, 0, dt)
		if err != nil {
			t.Fatalf("Propagate(dt=%g) error: %v", dt, err)
		}
		if math.Abs(pos.LatitudeDeg) > 1e-9 {
			t.Errorf("dt=%g: LatitudeDeg = %g, want 0", dt, pos.LatitudeDeg)
		}
	}
}

// TestPropagatePolarReachesPole: a 90° inclination orbit passes over the
// pole one quarter period after the ascending node.
func TestPropagatePolarReachesPole(t *testing.T) {
	el := orbit.Elements{SemiMajorAxisKm: 7151, InclinationDeg: 90, RAANDeg: 0}

	period, err := el.Period()
	if err != nil {
		t.Fatalf("Period() error: %v", err)
	}

	pos, err := Keplerian{}.Propagate(el, 0, period/4)
	if err != nil {
		t.Fatalf("Propagate() error: %v", err)
	}
	if math.Abs(pos.LatitudeDeg-90) > 1e-6 {
		t.Errorf("LatitudeDeg = %.9f, want 90 at quarter period", pos.LatitudeDeg)
	}
}

// TestPositionAt verifies the absolute-instant wrapper derives elapsed time
// from the epoch.
func TestPositionAt(t *testing.T) {
	el := orbit.Elements{SemiMajorAxisKm: 6871, InclinationDeg: 51.6, RAANDeg: 30}
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var prop Keplerian

	tests := []struct {
		name    string
		at      time.Time
		elapsed float64
	}{
		{"at epoch", epoch, 0},
		{"ten seconds after", epoch.Add(10 * time.Second), 10},
		{"an hour before", epoch.Add(-time.Hour), -3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromWrapper, err := PositionAt(prop, el, 15, epoch, tt.at)
			if err != nil {
				t.Fatalf("PositionAt() error: %v", err)
			}
			direct, err := prop.Propagate(el, 15, tt.elapsed)
			if err != nil {
				t.Fatalf("Propagate() error: %v", err)
			}
			if fromWrapper != direct {
				t.Errorf("PositionAt() = %+v, Propagate(%g) = %+v", fromWrapper, tt.elapsed, direct)
			}
		})
	}
}
