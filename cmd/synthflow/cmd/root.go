package cmd

import (
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/synthflow/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	seed      uint64
	instant   bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "synthflow",
	Short: "Data submission and analysis workflow simulator",
	Long: `synthflow walks a project through the submit, analyze, synthesize,
denoise and export workflow.

Features:
  - CSV or Excel input with lenient comma splitting
  - Simulated quality metrics
  - Synthetic rows derived from per-column statistics
  - Simulated denoising report
  - CSV, JSON and optional Excel artifacts with SHA256 checksums`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Disable()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "synthflow.yaml",
		"Path to configuration file (defaults are used when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Simulation overrides
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"Override random seed (0 keeps the configured seed)")
	rootCmd.PersistentFlags().BoolVar(&instant, "instant", false,
		"Skip all simulated delays")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the persistent flag values that override config
// file settings.
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Seed:      seed,
		Instant:   instant,
	}
}

// loadConfig reads the config file, applies overrides and validates the
// result.
func loadConfig(extra config.Overrides) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, err
	}

	o := GetCLIOverrides()
	o.OutputDir = extra.OutputDir
	o.XLSX = extra.XLSX
	cfg.ApplyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
