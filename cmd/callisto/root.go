package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"telescope-hq/callisto/pkg/config"
	"telescope-hq/callisto/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - telemetry registry validator",
	Long: `Callisto validates telemetry registry files: the YAML documents that
declare an application's metrics and pings.

It checks identifier grammars, per-type definition rules, reserved names,
and cross-file duplicates, reporting every problem in one pass so a broken
registry is fixed in a single edit cycle.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file when one is given, otherwise the
// defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newLogger builds the process logger from configuration and the --verbose
// flag.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
}
