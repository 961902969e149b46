package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/synthflow/internal/types"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSimulation()...)
	errors = append(errors, c.validateExport()...)

	if c.Preview.Rows < 0 {
		errors = append(errors, ValidationError{
			Field:   "preview.rows",
			Message: "rows cannot be negative",
		})
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSimulation() ValidationErrors {
	var errors ValidationErrors
	s := c.Simulation

	if s.AnalysisDelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.analysis_delay_seconds",
			Message: "analysis_delay_seconds cannot be negative",
		})
	}

	if s.DenoiseDelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.denoise_delay_seconds",
			Message: "denoise_delay_seconds cannot be negative",
		})
	}

	if s.ProgressIntervalSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.progress_interval_seconds",
			Message: "progress_interval_seconds cannot be negative",
		})
	}

	if s.ProgressSteps < types.MinProgressSteps {
		errors = append(errors, ValidationError{
			Field:   "simulation.progress_steps",
			Message: fmt.Sprintf("progress_steps must be at least %d", types.MinProgressSteps),
		})
	}

	if s.MinSyntheticRows <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.min_synthetic_rows",
			Message: "min_synthetic_rows must be positive",
		})
	}

	if s.MaxSyntheticRows <= s.MinSyntheticRows {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_synthetic_rows",
			Message: "max_synthetic_rows must be greater than min_synthetic_rows",
		})
	}

	return errors
}

func (c *Config) validateExport() ValidationErrors {
	var errors ValidationErrors

	if c.Export.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "export.dir",
			Message: "dir is required",
		})
	}

	if c.Export.DateLayout == "" {
		errors = append(errors, ValidationError{
			Field:   "export.date_layout",
			Message: "date_layout is required",
		})
	} else if time.Date(2001, 3, 4, 5, 6, 7, 0, time.UTC).Format(c.Export.DateLayout) == c.Export.DateLayout {
		// A layout with no recognised elements formats to itself.
		errors = append(errors, ValidationError{
			Field:   "export.date_layout",
			Message: "date_layout contains no date elements",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
