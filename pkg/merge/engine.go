package merge

import (
	"context"
	"time"

	"github.com/sdejongh/mergeln/pkg/compare"
	"github.com/sdejongh/mergeln/pkg/fsinfo"
	"github.com/sdejongh/mergeln/pkg/logging"
	"github.com/sdejongh/mergeln/pkg/models"
	"github.com/sdejongh/mergeln/pkg/output"
	"github.com/sdejongh/mergeln/pkg/storage"
)

// Engine runs a merge of two top-level paths
type Engine struct {
	backend    storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.MergeOperation
}

// NewEngine creates a new merge engine
func NewEngine(
	backend storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.MergeOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:    backend,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger.WithFields(logging.Fields{"operation_id": operation.ID}),
		operation:  operation,
	}
}

// Run classifies both paths and merges them as files or as directories.
//
// A top-level path that cannot be stat'd is returned as the stat error, and
// paths of different kinds as *TypeMismatchError (after narrating it). Once
// both paths are compatible Run returns a report and no error, whatever
// happened to individual pairs.
func (e *Engine) Run(ctx context.Context) (*models.MergeReport, error) {
	pathA, pathB := e.operation.PathA, e.operation.PathB

	kindA, err := fsinfo.Classify(pathA)
	if err != nil {
		return nil, err
	}
	kindB, err := fsinfo.Classify(pathB)
	if err != nil {
		return nil, err
	}

	if kindA != kindB || kindA == fsinfo.KindOther {
		e.formatter.TypeMismatch(pathA, pathB)
		return nil, &TypeMismatchError{PathA: pathA, PathB: pathB, KindA: kindA, KindB: kindB}
	}

	report := &models.MergeReport{
		OperationID: e.operation.ID,
		PathA:       pathA,
		PathB:       pathB,
		StartTime:   time.Now(),
	}

	if same, err := fsinfo.SameFilesystem(pathA, pathB); err == nil && !same {
		e.logger.Warn(ctx, "paths are on different filesystems, hard links will fail", logging.Fields{
			"path_a": pathA,
			"path_b": pathB,
		})
	}

	e.logger.Info(ctx, "merge started", logging.Fields{
		"path_a":        pathA,
		"path_b":        pathB,
		"kind":          kindA.String(),
		"link_strategy": string(e.operation.LinkStrategy),
		"comparator":    e.comparator.Name(),
	})

	merger := NewMerger(e.backend, e.comparator, e.formatter, e.logger, e.operation)
	if kindA == fsinfo.KindFile {
		merger.MergeFiles(ctx, pathA, pathB)
	} else {
		merger.MergeDirectories(ctx, pathA, pathB)
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Stats = merger.Stats()
	report.Errors = merger.Errors()
	report.Differences = merger.Differences()

	e.logger.Info(ctx, "merge completed", logging.Fields{
		"duration_ms":     report.Duration.Milliseconds(),
		"pairs_compared":  report.Stats.PairsCompared,
		"files_linked":    report.Stats.FilesLinked,
		"errors":          len(report.Errors),
		"bytes_reclaimed": report.Stats.BytesReclaimed,
	})

	return report, nil
}
