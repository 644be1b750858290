package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitwatch/orbitwatch/internal/catalog"
	"github.com/orbitwatch/orbitwatch/internal/passes"
	"github.com/orbitwatch/orbitwatch/internal/propagation"
)

var (
	passesLat     float64
	passesLon     float64
	passesAlt     float64
	passesStart   string
	passesHorizon time.Duration
	passesMinElev float64
	passesMax     int
)

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "Predict satellite passes over a ground observer",
	RunE:  runPasses,
}

func init() {
	passesCmd.Flags().Float64Var(&passesLat, "lat", 0, "observer latitude in degrees")
	passesCmd.Flags().Float64Var(&passesLon, "lon", 0, "observer longitude in degrees")
	passesCmd.Flags().Float64Var(&passesAlt, "alt-km", 0, "observer altitude in kilometres")
	passesCmd.Flags().StringVar(&passesStart, "start", "", "prediction start, RFC 3339 (default: now)")
	passesCmd.Flags().DurationVar(&passesHorizon, "horizon", 24*time.Hour, "how far ahead to predict")
	passesCmd.Flags().Float64Var(&passesMinElev, "min-elevation", 10, "minimum elevation in degrees")
	passesCmd.Flags().IntVar(&passesMax, "max-passes", 0, "max passes per satellite (0 = unlimited)")
}

func runPasses(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	start := time.Now().UTC()
	if passesStart != "" {
		start, err = time.Parse(time.RFC3339, passesStart)
		if err != nil {
			return fmt.Errorf("invalid --start value %q: %w", passesStart, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := passes.Request{
		Observer: passes.Observer{
			LatitudeDeg:  passesLat,
			LongitudeDeg: passesLon,
			AltitudeKm:   passesAlt,
		},
		Satellites:      cat.ProximitySatellites(),
		Start:           start,
		Horizon:         passesHorizon,
		MinElevationDeg: passesMinElev,
		MaxPasses:       passesMax,
	}

	logger.Info("predicting passes",
		"satellites", len(req.Satellites),
		"start", start.Format(time.RFC3339),
		"horizon", passesHorizon.String(),
		"min_elevation_deg", passesMinElev,
	)

	results := passes.Predict(ctx, propagation.Keplerian{}, req)

	enc := json.NewEncoder(os.Stdout)
	for _, res := range results {
		if res.Error != "" {
			logger.Error("pass prediction failed", "satellite", res.SatelliteID, "error", res.Error)
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return ctx.Err()
}
