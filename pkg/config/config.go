package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sdejongh/conflictsweep/pkg/logging"
	"github.com/sdejongh/conflictsweep/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Root     string        `yaml:"root"`
	Devices  string        `yaml:"devices"` // comma separated, e.g. "DESKTOP1, LAPTOP2"
	MaxDepth int           `yaml:"max_depth"`
	Exclude  []string      `yaml:"exclude"`
	Logging  LoggingConfig `yaml:"logging"`
	Output   OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Verbosity  int    `yaml:"verbosity"`   // 0 (critical) to 5 (debug)
	File       string `yaml:"file"`        // Optional log file, in addition to stdout
	Format     string `yaml:"format"`      // "text" or "json", for the log file
	MaxSize    int64  `yaml:"max_size"`    // Rotate the log file beyond this many bytes
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "log" or "json"
	Progress bool   `yaml:"progress"` // Show a live directory counter
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		MaxDepth: models.DefaultMaxDepth,
		Exclude:  []string{},
		Logging: LoggingConfig{
			Verbosity:  int(logging.DefaultLevel),
			Format:     string(logging.FormatText),
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 5,
		},
		Output: OutputConfig{
			Format:   "log",
			Progress: false,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.MaxDepth, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// Validate checks the logging settings
func (c *LoggingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Verbosity, validation.Min(int(logging.CriticalLevel)), validation.Max(int(logging.DebugLevel))),
		validation.Field(&c.Format, validation.Required, validation.In(string(logging.FormatText), string(logging.FormatJSON))),
		validation.Field(&c.MaxSize, validation.Min(int64(0))),
		validation.Field(&c.MaxBackups, validation.Min(0)),
	)
}

// Validate checks the output settings
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.Required, validation.In("log", "json")),
	)
}
