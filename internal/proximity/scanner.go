// Package proximity scans a population of satellites over a time grid and
// reports every instant at which two satellites come closer than a distance
// threshold.
//
// A scan performs O(instants × satellites²) work: each grid instant costs
// one propagation per satellite plus a distance check per unordered pair.
// Callers bound total work through the step size and the satellite count.
package proximity

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/orbitwatch/orbitwatch/internal/metrics"
	"github.com/orbitwatch/orbitwatch/internal/orbit"
	"github.com/orbitwatch/orbitwatch/internal/propagation"
)

// Scanner runs proximity scans with a fixed pool of workers fanned out over
// grid instants. Stateless between calls; safe for concurrent use.
type Scanner struct {
	prop    propagation.Propagator
	workers int
	logger  *slog.Logger
}

// NewScanner creates a scanner using the given propagator. workers < 1
// selects runtime.NumCPU().
func NewScanner(prop propagation.Propagator, workers int, logger *slog.Logger) *Scanner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		prop:    prop,
		workers: workers,
		logger:  logger,
	}
}

// instantResult holds one grid instant's detections. Each index of the
// result slice is written by exactly one worker.
type instantResult struct {
	events []Event
	err    error
}

// Scan evaluates every step-aligned grid instant in [q.Start, q.End] and
// returns the detected events ordered by time, then by satellite ID pair.
// The scan is all-or-nothing: a propagation failure for any satellite at
// any instant aborts the whole call with the originating error. The context
// is checked once per grid instant.
func (s *Scanner) Scan(ctx context.Context, q Query) ([]Event, error) {
	if q.End.Before(q.Start) {
		return nil, &InvalidRangeError{
			Field:  "end_time",
			Detail: fmt.Sprintf("%s is before start %s", q.End.Format(time.RFC3339), q.Start.Format(time.RFC3339)),
		}
	}
	if q.Step <= 0 {
		return nil, &InvalidRangeError{
			Field:  "step",
			Detail: fmt.Sprintf("%s must be > 0", q.Step),
		}
	}
	if err := orbit.CheckFinite("threshold_km", q.ThresholdKm); err != nil {
		return nil, err
	}
	if q.ThresholdKm <= 0 {
		return nil, &orbit.DomainError{
			Quantity:   "threshold_km",
			Value:      q.ThresholdKm,
			Constraint: "must be > 0",
		}
	}

	// Pre-sort satellites by ID so the inner pair loop emits each instant's
	// events already in (SatelliteA, SatelliteB) order.
	sats := make([]Satellite, len(q.Satellites))
	copy(sats, q.Satellites)
	sort.Slice(sats, func(i, j int) bool { return sats[i].ID < sats[j].ID })

	// End is included only when it lands exactly on the grid.
	instants := int(q.End.Sub(q.Start)/q.Step) + 1

	s.logger.Info("proximity scan starting",
		"start", q.Start.UTC().Format(time.RFC3339),
		"end", q.End.UTC().Format(time.RFC3339),
		"step", q.Step.String(),
		"threshold_km", q.ThresholdKm,
		"satellites", len(sats),
		"instants", instants,
		"workers", s.workers,
	)

	scanStart := time.Now()
	results := make([]instantResult, instants)

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, s.workers*2)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-scanCtx.Done():
					return
				default:
				}
				t := q.Start.Add(time.Duration(idx) * q.Step)
				res := s.scanInstant(t, sats, q.ThresholdKm)
				results[idx] = res
				if res.err != nil {
					cancel()
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < instants; i++ {
			select {
			case jobs <- i:
			case <-scanCtx.Done():
				return
			}
		}
	}()

	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			metrics.RecordScanError()
			return nil, res.err
		}
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordScanError()
		return nil, err
	}

	// Parallel completion order is arbitrary; concatenating per-instant
	// results in grid order restores the time-ascending contract.
	var events []Event
	for _, res := range results {
		events = append(events, res.events...)
	}

	duration := time.Since(scanStart)
	metrics.RecordScan(duration, instants, len(sats), len(events))

	s.logger.Info("proximity scan complete",
		"instants", instants,
		"events", len(events),
		"duration_ms", duration.Milliseconds(),
	)

	return events, nil
}

// scanInstant propagates every satellite to time t and checks all unordered
// pairs against the threshold. Equality with the threshold is not an event.
func (s *Scanner) scanInstant(t time.Time, sats []Satellite, thresholdKm float64) instantResult {
	positions := make([]orbit.Geodetic, len(sats))
	for i, sat := range sats {
		pos, err := propagation.PositionAt(s.prop, sat.Elements, sat.InitialLongitudeDeg, sat.Epoch, t)
		if err != nil {
			return instantResult{err: fmt.Errorf("satellite %s at %s: %w", sat.ID, t.UTC().Format(time.RFC3339), err)}
		}
		positions[i] = pos
	}

	var events []Event
	for i := range sats {
		for j := i + 1; j < len(sats); j++ {
			dist, err := positions[i].DistanceTo(positions[j])
			if err != nil {
				return instantResult{err: fmt.Errorf("distance %s to %s at %s: %w",
					sats[i].ID, sats[j].ID, t.UTC().Format(time.RFC3339), err)}
			}
			if dist < thresholdKm {
				ev := Event{
					SatelliteA: sats[i].ID,
					SatelliteB: sats[j].ID,
					Time:       t,
					PositionA:  positions[i],
					PositionB:  positions[j],
					DistanceKm: dist,
				}
				events = append(events, ev)
				s.logger.Warn("proximity detected",
					"satellite_a", ev.SatelliteA,
					"satellite_b", ev.SatelliteB,
					"time", t.UTC().Format(time.RFC3339),
					"distance_km", dist,
				)
			}
		}
	}
	return instantResult{events: events}
}
