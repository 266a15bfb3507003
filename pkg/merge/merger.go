// Package merge consolidates identical files of two directory trees into
// hard links.
//
// The walk is depth-first and single-threaded. Failures never propagate out
// of MergeFiles or MergeDirectories: each one is reported, recorded in the
// statistics, and the walk continues with the next entry.
package merge

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/sdejongh/mergeln/pkg/compare"
	"github.com/sdejongh/mergeln/pkg/fsinfo"
	"github.com/sdejongh/mergeln/pkg/logging"
	"github.com/sdejongh/mergeln/pkg/models"
	"github.com/sdejongh/mergeln/pkg/output"
	"github.com/sdejongh/mergeln/pkg/storage"
)

// dirKey identifies a directory by device and inode
type dirKey struct {
	dev uint64
	ino uint64
}

// Merger merges file pairs and directory pairs
type Merger struct {
	backend    storage.Backend
	comparator compare.Comparator
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.MergeOperation

	stats       models.Statistics
	errors      []models.MergeError
	differences []models.Difference

	// identities of the first-tree directories on the current recursion path
	ancestors map[dirKey]bool
}

// NewMerger creates a new merger
func NewMerger(
	backend storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.MergeOperation,
) *Merger {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Merger{
		backend:    backend,
		comparator: comparator,
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
		ancestors:  make(map[dirKey]bool),
	}
}

// Stats returns the statistics collected so far
func (m *Merger) Stats() models.Statistics {
	return m.stats
}

// Errors returns the errors collected so far
func (m *Merger) Errors() []models.MergeError {
	return m.errors
}

// Differences returns the pairs left unlinked so far
func (m *Merger) Differences() []models.Difference {
	return m.differences
}

// MergeDirectories merges every entry of dirA with the entry of the same
// name in dirB. Hidden entries are ignored. Pairs of regular files are
// passed to MergeFiles, pairs of directories are merged recursively, and
// everything else is skipped without a report.
func (m *Merger) MergeDirectories(ctx context.Context, dirA, dirB string) {
	if m.operation.GuardCycles {
		key, ok := m.dirIdentity(dirA)
		if ok {
			if m.ancestors[key] {
				m.stats.CyclesSkipped++
				m.logger.Warn(ctx, "directory cycle skipped", logging.Fields{"path_a": dirA, "path_b": dirB})
				return
			}
			m.ancestors[key] = true
			defer delete(m.ancestors, key)
		}
	}

	names, err := m.backend.ReadDir(ctx, dirA)
	if err != nil {
		m.reportError(ctx, dirA, "open", err)
		return
	}
	m.stats.DirsVisited++

	for _, name := range names {
		if isHidden(name) {
			m.stats.HiddenSkipped++
			continue
		}

		pathA := filepath.Join(dirA, name)
		pathB := filepath.Join(dirB, name)

		if m.excluded(pathA) {
			m.stats.Excluded++
			m.logger.Debug(ctx, "entry excluded", logging.Fields{"path_a": pathA})
			continue
		}

		kindA, _ := fsinfo.Classify(pathA)
		kindB, _ := fsinfo.Classify(pathB)

		switch {
		case kindA == fsinfo.KindFile && kindB == fsinfo.KindFile:
			m.MergeFiles(ctx, pathA, pathB)
		case kindA == fsinfo.KindDir && kindB == fsinfo.KindDir:
			m.MergeDirectories(ctx, pathA, pathB)
		default:
			m.stats.EntriesSkipped++
			m.logger.Debug(ctx, "entry skipped", logging.Fields{
				"path_a": pathA,
				"path_b": pathB,
				"kind_a": kindA.String(),
				"kind_b": kindB.String(),
			})
		}
	}
}

// MergeFiles replaces pathB with a hard link to pathA when both regular files
// have identical content. The result is narrated, logged and counted.
func (m *Merger) MergeFiles(ctx context.Context, pathA, pathB string) models.PairResult {
	start := time.Now()
	result := m.mergeFiles(ctx, pathA, pathB)
	result.Duration = time.Since(start)

	m.stats.Record(result)
	if result.Failed() {
		m.errors = append(m.errors, models.MergeError{
			Path:      pathB,
			Operation: operationOf(result.Error),
			Error:     result.Error.Error(),
			Timestamp: time.Now(),
		})
	}
	if diff, ok := models.NewDifference(result); ok {
		m.differences = append(m.differences, diff)
	}
	m.formatter.Pair(result)
	m.logPair(ctx, result)

	return result
}

func (m *Merger) mergeFiles(ctx context.Context, pathA, pathB string) models.PairResult {
	result := models.PairResult{PathA: pathA, PathB: pathB}

	idA, idB, err := fsinfo.StatPair(pathA, pathB)
	if err != nil {
		return failed(result, err)
	}
	result.Size = idA.Size
	result.SizeB = idB.Size

	if fsinfo.SameFile(idA, idB) {
		result.Outcome = models.OutcomeSameFile
		return result
	}

	// Size check must stay ahead of the content comparison
	if idA.Size != idB.Size {
		result.Outcome = models.OutcomeDifferentSizes
		return result
	}

	cmp, err := m.comparator.Compare(ctx, pathA, pathB)
	if err != nil {
		return failed(result, err)
	}
	m.stats.BytesCompared += cmp.BytesCompared
	result.Reason = cmp.Reason

	if !cmp.Equal {
		result.Outcome = models.OutcomeDifferentFiles
		return result
	}

	if err := m.consolidate(ctx, pathA, pathB); err != nil {
		return failed(result, err)
	}

	result.Outcome = models.OutcomeLinked
	if idB.Nlink == 1 {
		result.BytesReclaimed = idB.Size
	}
	return result
}

// consolidate makes pathB a hard link to pathA
func (m *Merger) consolidate(ctx context.Context, pathA, pathB string) error {
	if m.operation.LinkStrategy == models.LinkAtomic {
		return linkAtomic(ctx, m.backend, pathA, pathB)
	}
	return linkReplace(ctx, m.backend, pathA, pathB)
}

func (m *Merger) dirIdentity(dir string) (dirKey, bool) {
	id, err := fsinfo.Stat(dir)
	// Platforms without inode numbers cannot be guarded
	if err != nil || id.Ino == 0 {
		return dirKey{}, false
	}
	return dirKey{dev: id.Dev, ino: id.Ino}, true
}

func (m *Merger) excluded(pathA string) bool {
	if len(m.operation.ExcludePatterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(m.operation.PathA, pathA)
	if err != nil {
		rel = filepath.Base(pathA)
	}
	return shouldExclude(rel, m.operation.ExcludePatterns)
}

func (m *Merger) reportError(ctx context.Context, path, op string, err error) {
	m.errors = append(m.errors, models.MergeError{
		Path:      path,
		Operation: op,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
	m.formatter.Error(err)
	m.logger.Error(ctx, "directory not merged", err, logging.Fields{"path": path, "op": op})
}

func (m *Merger) logPair(ctx context.Context, result models.PairResult) {
	fields := logging.Fields{
		"path_a":  result.PathA,
		"path_b":  result.PathB,
		"outcome": string(result.Outcome),
		"size":    result.Size,
	}
	if result.Reason != "" {
		fields["reason"] = result.Reason
	}

	switch result.Outcome {
	case models.OutcomeError:
		m.logger.Error(ctx, "pair not merged", result.Error, fields)
	case models.OutcomeLinked:
		fields["bytes_reclaimed"] = result.BytesReclaimed
		m.logger.Info(ctx, "pair linked", fields)
	default:
		m.logger.Debug(ctx, "pair unchanged", fields)
	}
}

func failed(result models.PairResult, err error) models.PairResult {
	result.Outcome = models.OutcomeError
	result.Error = err
	return result
}

// operationOf names the failing system call for the report
func operationOf(err error) string {
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Op
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Op
	}
	return "compare"
}
