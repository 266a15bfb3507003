package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sdejongh/mergeln/pkg/compare"
	"github.com/sdejongh/mergeln/pkg/logging"
	"github.com/sdejongh/mergeln/pkg/merge"
	"github.com/sdejongh/mergeln/pkg/metrics"
	"github.com/sdejongh/mergeln/pkg/output"
	"github.com/sdejongh/mergeln/pkg/ratelimit"
	"github.com/sdejongh/mergeln/pkg/storage"
)

// runMerge merges pathB into pathA. It returns an error only for failures
// that make the whole run fail; per-pair failures are reported as they happen.
func runMerge(ctx context.Context, global *GlobalFlags, flags *MergeFlags, pathA, pathB string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg, global, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	operation, err := createMergeOperation(cfg, pathA, pathB)
	if err != nil {
		return fmt.Errorf("failed to create merge operation: %w", err)
	}

	logger, err := logging.Open(logging.Options{
		File:       cfg.Logging.File,
		Format:     cfg.Logging.Format,
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	readLimit, err := ratelimit.ParseRate(cfg.Performance.ReadLimit)
	if err != nil {
		return err
	}

	backend := ratelimit.NewBackend(storage.NewLocal(), ratelimit.NewLimiter(readLimit))
	defer backend.Close()

	comparator := compare.NewBinaryComparator(backend, cfg.Performance.BufferSize)
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter(stdout, stderr, cfg.Output.Quiet)
	default:
		formatter = output.NewHumanFormatter(stdout, stderr, cfg.Output.Quiet)
	}

	engine := merge.NewEngine(backend, comparator, formatter, logger, operation)

	report, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Output.Summary {
		if err := formatter.Complete(report); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile, report); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if flags.DiffReport != "" {
		if err := output.WriteDifferencesReport(report, flags.DiffReport, flags.DiffFormat); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	return nil
}
