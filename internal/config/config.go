// Package config provides configuration structures and loading for synthflow.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Preview    PreviewConfig    `yaml:"preview" mapstructure:"preview"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// SimulationConfig controls the simulated analysis, synthesis and denoising passes.
type SimulationConfig struct {
	Seed                    uint64  `yaml:"seed" mapstructure:"seed"` // 0 picks a time-based seed
	AnalysisDelaySeconds    float64 `yaml:"analysis_delay_seconds" mapstructure:"analysis_delay_seconds"`
	DenoiseDelaySeconds     float64 `yaml:"denoise_delay_seconds" mapstructure:"denoise_delay_seconds"`
	ProgressSteps           int     `yaml:"progress_steps" mapstructure:"progress_steps"`
	ProgressIntervalSeconds float64 `yaml:"progress_interval_seconds" mapstructure:"progress_interval_seconds"`
	MinSyntheticRows        int     `yaml:"min_synthetic_rows" mapstructure:"min_synthetic_rows"`
	MaxSyntheticRows        int     `yaml:"max_synthetic_rows" mapstructure:"max_synthetic_rows"` // exclusive
}

// ExportConfig represents artifact export settings.
type ExportConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	Analyst    string `yaml:"analyst" mapstructure:"analyst"`
	DateLayout string `yaml:"date_layout" mapstructure:"date_layout"` // Go time layout for analysisDate
	XLSX       bool   `yaml:"xlsx" mapstructure:"xlsx"`
}

// PreviewConfig represents CLI preview settings.
type PreviewConfig struct {
	Rows int `yaml:"rows" mapstructure:"rows"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:                    0,
			AnalysisDelaySeconds:    2,
			DenoiseDelaySeconds:     3,
			ProgressSteps:           10,
			ProgressIntervalSeconds: 0.2,
			MinSyntheticRows:        30,
			MaxSyntheticRows:        80,
		},
		Export: ExportConfig{
			Dir:        ".",
			Analyst:    "Data Analyst",
			DateLayout: "01/02/2006",
			XLSX:       false,
		},
		Preview: PreviewConfig{
			Rows: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// AnalysisDelay returns the simulated analysis delay as a duration.
func (s SimulationConfig) AnalysisDelay() time.Duration {
	return seconds(s.AnalysisDelaySeconds)
}

// DenoiseDelay returns the simulated denoising delay as a duration.
func (s SimulationConfig) DenoiseDelay() time.Duration {
	return seconds(s.DenoiseDelaySeconds)
}

// ProgressInterval returns the pause between synthesis progress updates.
func (s SimulationConfig) ProgressInterval() time.Duration {
	return seconds(s.ProgressIntervalSeconds)
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Instant returns a copy of the simulation settings with every delay removed.
// Tests and the CLI's --instant mode use it.
func (s SimulationConfig) Instant() SimulationConfig {
	s.AnalysisDelaySeconds = 0
	s.DenoiseDelaySeconds = 0
	s.ProgressIntervalSeconds = 0
	return s
}
