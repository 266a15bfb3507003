package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/mergeln/pkg/config"
	"github.com/sdejongh/mergeln/pkg/models"
)

// loadConfig loads configuration from file or returns default
func loadConfig(global *GlobalFlags) (*config.Config, error) {
	cfg, err := config.Load(global.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config, global *GlobalFlags, flags *MergeFlags) {
	if flags.LinkStrategy != "" {
		cfg.Merge.LinkStrategy = models.LinkStrategy(flags.LinkStrategy)
	}

	if flags.NoCycleGuard {
		cfg.Merge.GuardCycles = false
	}

	if flags.BufferSize > 0 {
		cfg.Performance.BufferSize = flags.BufferSize
	}

	if flags.ReadLimit != "" {
		cfg.Performance.ReadLimit = flags.ReadLimit
	}

	// Flag patterns are added to the configured ones
	if len(flags.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, flags.Exclude...)
	}

	if flags.Output != "" {
		cfg.Output.Format = flags.Output
	}

	if flags.MetricsFile != "" {
		cfg.Output.MetricsFile = flags.MetricsFile
	}

	if flags.LogFile != "" {
		cfg.Logging.File = flags.LogFile
	}
	if flags.LogFormat != "" {
		cfg.Logging.Format = flags.LogFormat
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}

	if global.Quiet {
		cfg.Output.Quiet = true
	}
	if global.Verbose {
		cfg.Output.Summary = true
	}
}

// createMergeOperation creates a merge operation from configuration
func createMergeOperation(cfg *config.Config, pathA, pathB string) (*models.MergeOperation, error) {
	operation := &models.MergeOperation{
		ID:              uuid.New().String(),
		PathA:           pathA,
		PathB:           pathB,
		LinkStrategy:    cfg.Merge.LinkStrategy,
		GuardCycles:     cfg.Merge.GuardCycles,
		ExcludePatterns: cfg.Exclude,
		BufferSize:      cfg.Performance.BufferSize,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
