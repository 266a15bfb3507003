package config

import (
	"github.com/sdejongh/mergeln/pkg/models"
	"github.com/sdejongh/mergeln/pkg/ratelimit"
)

// Config represents the application configuration
type Config struct {
	Merge       MergeConfig       `yaml:"merge"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// MergeConfig holds merge-related settings
type MergeConfig struct {
	LinkStrategy models.LinkStrategy `yaml:"link_strategy"`
	GuardCycles  bool                `yaml:"guard_cycles"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	BufferSize int    `yaml:"buffer_size"`
	ReadLimit  string `yaml:"read_limit"` // e.g. "50M"; empty = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format  string `yaml:"format"`  // "human" or "json"
	Quiet   bool   `yaml:"quiet"`   // Suppress narration lines (errors still shown)
	Summary bool   `yaml:"summary"` // Print a run summary after the merge

	// Prometheus textfile written after each run (empty = disabled)
	MetricsFile string `yaml:"metrics_file"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	File       string `yaml:"file"`   // Log file path (empty = no log file)
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			LinkStrategy: models.LinkReplace,
			GuardCycles:  true,
		},
		Performance: PerformanceConfig{
			BufferSize: 65536,
		},
		Output: OutputConfig{
			Format:  "human",
			Quiet:   false,
			Summary: false,
		},
		Logging: LoggingConfig{
			File:       "",
			Format:     "text",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Merge.LinkStrategy.Valid() {
		return &models.ValidationError{
			Field:   "merge.link_strategy",
			Message: "must be 'replace' or 'atomic'",
		}
	}

	if c.Performance.BufferSize < 4096 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 4096 bytes",
		}
	}

	if _, err := ratelimit.ParseRate(c.Performance.ReadLimit); err != nil {
		return &models.ValidationError{
			Field:   "performance.read_limit",
			Message: err.Error(),
		}
	}

	validOutputFormats := map[string]bool{"human": true, "json": true}
	if !validOutputFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging",
			Message: "max_size_mb and max_backups must not be negative",
		}
	}

	return nil
}
