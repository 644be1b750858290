package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	catalogPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "orbitwatch",
	Short: "Orbital propagation and proximity detection toolkit",
	Long: "Orbitwatch propagates satellites on simplified circular Keplerian orbits\n" +
		"and scans a satellite population for proximity events over a time window.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "config/catalog.yaml", "path to the satellite catalog YAML")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.AddCommand(positionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(passesCmd)
}

// newLogger builds the JSON logger shared by all subcommands. Logs go to
// stderr so stdout stays clean for result records.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
