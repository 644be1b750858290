// Package metrics exposes Prometheus counters for propagation and scan
// activity, served on the admin endpoint's /metrics route.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitwatch_scans_total",
			Help: "Total number of completed proximity scans.",
		},
	)

	scanErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitwatch_scan_errors_total",
			Help: "Total number of proximity scans aborted by an error.",
		},
	)

	scanDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitwatch_scan_duration_seconds",
			Help:    "Proximity scan duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	scanInstantsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitwatch_scan_instants_total",
			Help: "Total number of grid instants evaluated across all scans.",
		},
	)

	propagationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitwatch_propagations_total",
			Help: "Total number of single-satellite propagations performed by scans.",
		},
	)

	proximityEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitwatch_proximity_events_total",
			Help: "Total number of proximity events detected.",
		},
	)
)

func init() {
	prometheus.MustRegister(scansTotal)
	prometheus.MustRegister(scanErrorsTotal)
	prometheus.MustRegister(scanDurationSeconds)
	prometheus.MustRegister(scanInstantsTotal)
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(proximityEventsTotal)
}

// RecordScan records one completed scan: its duration, the number of grid
// instants evaluated, the satellite count, and the events detected.
func RecordScan(duration time.Duration, instants, satellites, events int) {
	scansTotal.Inc()
	scanDurationSeconds.Observe(duration.Seconds())
	scanInstantsTotal.Add(float64(instants))
	propagationsTotal.Add(float64(instants * satellites))
	proximityEventsTotal.Add(float64(events))
}

// RecordScanError records a scan aborted by a propagation or range error.
func RecordScanError() {
	scanErrorsTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
