package output

import (
	"github.com/sdejongh/mergeln/pkg/models"
)

// Formatter defines the interface for merge narration.
// Every compared file pair produces exactly one line: outcomes go to the
// normal writer, failures to the error writer. Directories are not narrated.
type Formatter interface {
	// Pair reports the outcome of one file pair
	Pair(result models.PairResult) error

	// TypeMismatch reports two top-level paths of different kinds
	TypeMismatch(pathA, pathB string) error

	// Error reports an error that is not tied to a compared pair
	Error(err error) error

	// Complete displays the run summary
	Complete(report *models.MergeReport) error

	// Name returns the formatter name
	Name() string
}
