package models

import (
	"time"
)

// Outcome represents what happened to a compared file pair
type Outcome string

const (
	// OutcomeSameFile means both paths already share device and inode
	OutcomeSameFile Outcome = "same_file"
	// OutcomeDifferentSizes means the files differ in size; nothing changed
	OutcomeDifferentSizes Outcome = "different_sizes"
	// OutcomeDifferentFiles means same size but different content; nothing changed
	OutcomeDifferentFiles Outcome = "different_files"
	// OutcomeLinked means the second path now links to the first path's inode
	OutcomeLinked Outcome = "linked"
	// OutcomeError means the pair could not be merged
	OutcomeError Outcome = "error"
)

// PairResult is the result of merging one file pair
type PairResult struct {
	PathA   string
	PathB   string
	Outcome Outcome

	// Sizes of both files in bytes (when both could be stat'd)
	Size  int64
	SizeB int64

	// BytesReclaimed is non-zero when the second file's old inode had no
	// other links and was freed by the consolidation
	BytesReclaimed int64

	// Reason carries comparator detail for the log
	Reason string

	// Error is set when Outcome is OutcomeError
	Error error

	Duration time.Duration
}

// Failed reports whether the pair ended with an error
func (r *PairResult) Failed() bool {
	return r.Outcome == OutcomeError
}

// Difference describes a pair that was compared but not linked
type Difference struct {
	PathA   string  `json:"path_a"`
	PathB   string  `json:"path_b"`
	Outcome Outcome `json:"outcome"`
	SizeA   int64   `json:"size_a"`
	SizeB   int64   `json:"size_b"`
	Details string  `json:"details,omitempty"`
}

// NewDifference builds a Difference from a pair result.
// ok is false for outcomes that leave the pair consolidated.
func NewDifference(result PairResult) (diff Difference, ok bool) {
	switch result.Outcome {
	case OutcomeDifferentSizes, OutcomeDifferentFiles, OutcomeError:
	default:
		return Difference{}, false
	}

	diff = Difference{
		PathA:   result.PathA,
		PathB:   result.PathB,
		Outcome: result.Outcome,
		SizeA:   result.Size,
		SizeB:   result.SizeB,
		Details: result.Reason,
	}
	if result.Error != nil {
		diff.Details = result.Error.Error()
	}
	return diff, true
}
