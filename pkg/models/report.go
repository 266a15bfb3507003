package models

import (
	"time"
)

// MergeReport represents the results of a merge run
type MergeReport struct {
	OperationID string
	PathA       string
	PathB       string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Stats Statistics

	// Errors encountered, one per failed pair or unreadable directory
	Errors []MergeError

	// Differences lists the pairs that were compared but left unlinked
	Differences []Difference
}

// Statistics holds merge run metrics
type Statistics struct {
	PairsCompared    int `json:"pairs_compared"` // File pairs that reached the File Merger
	FilesLinked      int `json:"files_linked"`
	AlreadyLinked    int `json:"already_linked"`
	DifferentSizes   int `json:"different_sizes"`
	DifferentContent int `json:"different_content"`
	PairsErrored     int `json:"pairs_errored"`

	DirsVisited    int `json:"dirs_visited"`
	EntriesSkipped int `json:"entries_skipped"` // Mismatched or unmatched entries
	HiddenSkipped  int `json:"hidden_skipped"`
	Excluded       int `json:"excluded"`
	CyclesSkipped  int `json:"cycles_skipped"`

	BytesCompared  int64 `json:"bytes_compared"`
	BytesReclaimed int64 `json:"bytes_reclaimed"`
}

// MergeError represents an error during a merge run
type MergeError struct {
	Path      string
	Operation string
	Error     string
	Timestamp time.Time
}

// Record adds a pair result to the statistics
func (s *Statistics) Record(result PairResult) {
	s.PairsCompared++
	switch result.Outcome {
	case OutcomeLinked:
		s.FilesLinked++
		s.BytesReclaimed += result.BytesReclaimed
	case OutcomeSameFile:
		s.AlreadyLinked++
	case OutcomeDifferentSizes:
		s.DifferentSizes++
	case OutcomeDifferentFiles:
		s.DifferentContent++
	case OutcomeError:
		s.PairsErrored++
	}
}

// HasErrors reports whether any pair or directory failed
func (r *MergeReport) HasErrors() bool {
	return len(r.Errors) > 0
}
