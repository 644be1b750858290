package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/orbitwatch/orbitwatch/internal/admin"
	"github.com/orbitwatch/orbitwatch/internal/catalog"
	"github.com/orbitwatch/orbitwatch/internal/propagation"
	"github.com/orbitwatch/orbitwatch/internal/proximity"
)

var (
	scanStart     string
	scanEnd       string
	scanStep      time.Duration
	scanThreshold float64
	scanWorkers   int
	adminAddr     string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the catalog for proximity events over a time window",
	Long: "Scan evaluates every step-aligned instant in [start, end] and reports each\n" +
		"pair of satellites closer than the threshold. Work grows with\n" +
		"instants × satellites², so choose the step and catalog size accordingly.",
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanStart, "start", "", "window start, RFC 3339 (default: catalog scan.start)")
	scanCmd.Flags().StringVar(&scanEnd, "end", "", "window end, RFC 3339 (default: catalog scan.end)")
	scanCmd.Flags().DurationVar(&scanStep, "step", 0, "grid step, e.g. 1s (default: catalog scan.step)")
	scanCmd.Flags().Float64Var(&scanThreshold, "threshold-km", 0, "proximity threshold in km (default: catalog scan.threshold_km; required)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "scan worker count (default: catalog workers, then NumCPU)")
	scanCmd.Flags().StringVar(&adminAddr, "admin-addr", "", "serve /healthz and /metrics on this address while scanning")
}

func runScan(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	logger := newLogger().With("run_id", runID)

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	query, err := buildQuery(cat)
	if err != nil {
		return err
	}

	workers := scanWorkers
	if workers == 0 {
		workers = cat.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if adminAddr != "" {
		srv := admin.NewServer(adminAddr, logger)
		go func() {
			logger.Info("admin server listening", "addr", adminAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("admin server shutdown error", "error", err)
			}
		}()
	}

	scanner := proximity.NewScanner(propagation.Keplerian{}, workers, logger)
	events, err := scanner.Scan(ctx, query)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
	}
	return nil
}

// buildQuery merges the catalog scan defaults with flag overrides. The
// threshold is deliberately never defaulted: it must be set explicitly in
// the catalog or on the command line.
func buildQuery(cat *catalog.Catalog) (proximity.Query, error) {
	q := proximity.Query{
		Start:       cat.Scan.Start,
		End:         cat.Scan.End,
		Step:        time.Duration(cat.Scan.Step),
		ThresholdKm: cat.Scan.ThresholdKm,
		Satellites:  cat.ProximitySatellites(),
	}

	var err error
	if scanStart != "" {
		q.Start, err = time.Parse(time.RFC3339, scanStart)
		if err != nil {
			return q, fmt.Errorf("invalid --start value %q: %w", scanStart, err)
		}
	}
	if scanEnd != "" {
		q.End, err = time.Parse(time.RFC3339, scanEnd)
		if err != nil {
			return q, fmt.Errorf("invalid --end value %q: %w", scanEnd, err)
		}
	}
	if scanStep != 0 {
		q.Step = scanStep
	}
	if scanThreshold != 0 {
		q.ThresholdKm = scanThreshold
	}

	if q.Start.IsZero() || q.End.IsZero() {
		return q, fmt.Errorf("scan window is required: set scan.start/scan.end in the catalog or --start/--end")
	}
	if q.Step == 0 {
		return q, fmt.Errorf("scan step is required: set scan.step in the catalog or --step")
	}
	if q.ThresholdKm == 0 {
		return q, fmt.Errorf("threshold is required: set scan.threshold_km in the catalog or --threshold-km")
	}
	return q, nil
}
