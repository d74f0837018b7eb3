package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/conflictsweep/pkg/config"
	"github.com/sdejongh/conflictsweep/pkg/models"
)

// validateSweepFlags validates flags that have no config counterpart
func validateSweepFlags() error {
	validReportFormats := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validReportFormats[sweepFlags.ReportFormat] {
		return fmt.Errorf("invalid report format: %s (valid: human, json)", sweepFlags.ReportFormat)
	}

	if sweepFlags.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth: %d (must be at least 1)", sweepFlags.MaxDepth)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	// Verbosity only overrides the config file when given explicitly
	if cmd.Flags().Changed("verbosity") {
		cfg.Logging.Verbosity = globalFlags.Verbosity
	}

	if sweepFlags.MaxDepth > 0 {
		cfg.MaxDepth = sweepFlags.MaxDepth
	}

	// Exclude patterns
	if len(sweepFlags.Exclude) > 0 {
		cfg.Exclude = sweepFlags.Exclude
	}

	// Output format
	if sweepFlags.Output != "" {
		cfg.Output.Format = sweepFlags.Output
	}
	if sweepFlags.Progress {
		cfg.Output.Progress = true
	}

	// Logging
	if sweepFlags.LogFile != "" {
		cfg.Logging.File = sweepFlags.LogFile
	}
	if sweepFlags.LogFormat != "" {
		cfg.Logging.Format = sweepFlags.LogFormat
	}
}

// createRunOperation creates a run operation from configuration
func createRunOperation(cfg *config.Config, root string, devices []string) (*models.RunOperation, error) {
	operation := &models.RunOperation{
		ID:            uuid.New().String(),
		RootPath:      root,
		Devices:       devices,
		DryRun:        sweepFlags.DryRun,
		RemoveOrphans: sweepFlags.RemoveOrphans,
		Identify:      sweepFlags.Identify,
		Verbosity:     cfg.Logging.Verbosity,
		MaxDepth:      cfg.MaxDepth,
		Exclude:       cfg.Exclude,
		CreatedAt:     time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
