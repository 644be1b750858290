// Package passes predicts when catalogued satellites rise above a ground
// observer's horizon. Elevation is the angle between the observer's local
// vertical and the line of sight to the satellite on the spherical Earth.
package passes

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/orbit"
	"github.com/orbitwatch/orbitwatch/internal/propagation"
	"github.com/orbitwatch/orbitwatch/internal/proximity"
)

// Observer is a ground location.
type Observer struct {
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	AltitudeKm   float64 `json:"altitude_km"`
}

// TrackPoint is a sub-satellite position sampled during a pass.
type TrackPoint struct {
	Time         time.Time `json:"time"`
	LatitudeDeg  float64   `json:"latitude_deg"`
	LongitudeDeg float64   `json:"longitude_deg"`
	AltitudeKm   float64   `json:"altitude_km"`
	ElevationDeg float64   `json:"elevation_deg"`
}

// Pass describes a single interval during which a satellite stays at or
// above the requested minimum elevation.
type Pass struct {
	Start           time.Time    `json:"start"`
	MaxElevationAt  time.Time    `json:"max_elevation_at"`
	End             time.Time    `json:"end"`
	DurationSeconds float64      `json:"duration_seconds"`
	MaxElevationDeg float64      `json:"max_elevation_deg"`
	GroundTrack     []TrackPoint `json:"ground_track,omitempty"`
}

// SatellitePasses holds the predicted passes for one satellite.
type SatellitePasses struct {
	SatelliteID string `json:"satellite_id"`
	Passes      []Pass `json:"passes"`
	Error       string `json:"error,omitempty"`
}

// Request holds the parameters for a pass prediction.
type Request struct {
	Observer        Observer
	Satellites      []proximity.Satellite
	Start           time.Time
	Horizon         time.Duration
	MinElevationDeg float64
	MaxPasses       int // per satellite; <= 0 means unlimited
}

const (
	coarseStep = 30 * time.Second
	fineStep   = time.Second
	trackStep  = 10 // seconds between ground track samples
	minPassDur = 10 * time.Second
)

// Predict computes passes for every requested satellite. Each satellite is
// processed in its own goroutine, bounded by a semaphore.
func Predict(ctx context.Context, prop propagation.Propagator, req Request) []SatellitePasses {
	results := make([]SatellitePasses, len(req.Satellites))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i, sat := range req.Satellites {
		wg.Add(1)
		go func(idx int, s proximity.Satellite) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = SatellitePasses{SatelliteID: s.ID, Error: "cancelled"}
				return
			}

			passes, err := predictSatellite(ctx, prop, req, s)
			if err != nil {
				results[idx] = SatellitePasses{SatelliteID: s.ID, Error: err.Error()}
				return
			}
			results[idx] = SatellitePasses{SatelliteID: s.ID, Passes: passes}
		}(i, sat)
	}

	wg.Wait()
	return results
}

// predictSatellite finds the passes for a single satellite. A coarse scan
// locates above-threshold windows, a fine scan pins rise, peak, and set.
func predictSatellite(ctx context.Context, prop propagation.Propagator, req Request, sat proximity.Satellite) ([]Pass, error) {
	end := req.Start.Add(req.Horizon)
	var passes []Pass

	t := req.Start
	for t.Before(end) && (req.MaxPasses <= 0 || len(passes) < req.MaxPasses) {
		if ctx.Err() != nil {
			return passes, nil
		}

		el, _, err := elevationAt(prop, req.Observer, sat, t)
		if err != nil {
			return nil, err
		}

		if el >= req.MinElevationDeg {
			pass, windowEnd, err := refinePass(ctx, prop, req.Observer, sat, t, req.Start, end, req.MinElevationDeg)
			if err != nil {
				return nil, err
			}
			if pass != nil && pass.End.Sub(pass.Start) >= minPassDur {
				passes = append(passes, *pass)
			}
			t = windowEnd.Add(coarseStep)
		} else {
			t = t.Add(coarseStep)
		}
	}

	return passes, nil
}

// refinePass scans at fine resolution around a coarse above-threshold hit.
// It backs up to find the rise, then walks forward to the set, tracking the
// elevation peak. Returns the pass and the time the window ends.
func refinePass(ctx context.Context, prop propagation.Propagator, obs Observer, sat proximity.Satellite, coarseHit, windowStart, windowEnd time.Time, minElev float64) (*Pass, time.Time, error) {
	searchStart := coarseHit.Add(-coarseStep)
	if searchStart.Before(windowStart) {
		searchStart = windowStart
	}

	var (
		riseTime  time.Time
		setTime   time.Time
		maxEl     float64
		maxElTime time.Time
		wasAbove  bool
		foundRise bool
		track     []TrackPoint
	)

	t := searchStart
	for t.Before(windowEnd) {
		if ctx.Err() != nil {
			break
		}

		el, pos, err := elevationAt(prop, obs, sat, t)
		if err != nil {
			return nil, t, err
		}

		above := el >= minElev

		if above && !wasAbove {
			riseTime = t
			foundRise = true
			maxEl = el
			maxElTime = t
		}

		if above && foundRise {
			if el > maxEl {
				maxEl = el
				maxElTime = t
			}
			if int(t.Sub(riseTime).Seconds())%trackStep == 0 {
				track = append(track, TrackPoint{
					Time:         t,
					LatitudeDeg:  pos.LatitudeDeg,
					LongitudeDeg: pos.LongitudeDeg,
					AltitudeKm:   pos.AltitudeKm,
					ElevationDeg: el,
				})
			}
		}

		if !above && wasAbove && foundRise {
			setTime = t
			break
		}

		wasAbove = above
		t = t.Add(fineStep)
	}

	// Still above at the window end: close the pass there.
	if foundRise && setTime.IsZero() && wasAbove {
		setTime = t
		if el, _, err := elevationAt(prop, obs, sat, t); err == nil && el > maxEl {
			maxEl = el
			maxElTime = t
		}
	}

	if !foundRise || setTime.IsZero() {
		return nil, t, nil
	}

	return &Pass{
		Start:           riseTime,
		MaxElevationAt:  maxElTime,
		End:             setTime,
		DurationSeconds: setTime.Sub(riseTime).Seconds(),
		MaxElevationDeg: maxEl,
		GroundTrack:     track,
	}, setTime, nil
}

// elevationAt returns the satellite's elevation above the observer's local
// horizon, in degrees, along with the satellite position at time t.
func elevationAt(prop propagation.Propagator, obs Observer, sat proximity.Satellite, t time.Time) (float64, orbit.Geodetic, error) {
	pos, err := propagation.PositionAt(prop, sat.Elements, sat.InitialLongitudeDeg, sat.Epoch, t)
	if err != nil {
		return 0, orbit.Geodetic{}, err
	}

	ground := orbit.Geodetic{LatitudeDeg: obs.LatitudeDeg, LongitudeDeg: obs.LongitudeDeg, AltitudeKm: obs.AltitudeKm}
	gx, gy, gz := ground.Cartesian()
	sx, sy, sz := pos.Cartesian()

	dx, dy, dz := sx-gx, sy-gy, sz-gz
	gmag := math.Sqrt(gx*gx + gy*gy + gz*gz)
	dmag := math.Sqrt(dx*dx + dy*dy + dz*dz)

	sinEl := (dx*gx + dy*gy + dz*gz) / (gmag * dmag)
	// Rounding can push the ratio a hair past ±1 when the satellite is at
	// zenith or nadir.
	sinEl = math.Max(-1, math.Min(1, sinEl))
	return math.Asin(sinEl) * 180.0 / math.Pi, pos, nil
}
