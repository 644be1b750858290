package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitwatch/orbitwatch/internal/catalog"
	"github.com/orbitwatch/orbitwatch/internal/propagation"
)

var (
	positionSat string
	positionAt  string
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Compute a satellite's geodetic position at an instant",
	RunE:  runPosition,
}

func init() {
	positionCmd.Flags().StringVar(&positionSat, "sat", "", "satellite id from the catalog (required)")
	positionCmd.Flags().StringVar(&positionAt, "at", "", "query instant, RFC 3339 (default: now)")
	positionCmd.MarkFlagRequired("sat")
}

// positionRecord is the plain-data result handed to the caller.
type positionRecord struct {
	Satellite    string    `json:"satellite"`
	Time         time.Time `json:"time"`
	LatitudeDeg  float64   `json:"latitude_deg"`
	LongitudeDeg float64   `json:"longitude_deg"`
	AltitudeKm   float64   `json:"altitude_km"`
}

func runPosition(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	sat, err := cat.FindSatellite(positionSat)
	if err != nil {
		return err
	}

	at := time.Now().UTC()
	if positionAt != "" {
		at, err = time.Parse(time.RFC3339, positionAt)
		if err != nil {
			return fmt.Errorf("invalid --at value %q: %w", positionAt, err)
		}
	}

	pos, err := propagation.PositionAt(propagation.Keplerian{}, sat.Elements(), sat.InitialLongitudeDeg, sat.Epoch, at)
	if err != nil {
		return err
	}

	logger.Debug("position computed",
		"satellite", sat.ID,
		"time", at.UTC().Format(time.RFC3339),
		"elapsed_seconds", at.Sub(sat.Epoch).Seconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(positionRecord{
		Satellite:    sat.ID,
		Time:         at.UTC(),
		LatitudeDeg:  pos.LatitudeDeg,
		LongitudeDeg: pos.LongitudeDeg,
		AltitudeKm:   pos.AltitudeKm,
	})
}
