package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/mergeln/pkg/models"
)

// HumanFormatter writes one plain-text line per outcome
type HumanFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	quiet     bool
}

// NewHumanFormatter creates a formatter writing outcomes to writer and
// errors to errWriter. In quiet mode only errors are written.
func NewHumanFormatter(writer, errWriter io.Writer, quiet bool) *HumanFormatter {
	if writer == nil {
		writer = io.Discard
	}
	if errWriter == nil {
		errWriter = io.Discard
	}
	return &HumanFormatter{
		writer:    writer,
		errWriter: errWriter,
		quiet:     quiet,
	}
}

// Pair reports the outcome of one file pair
func (f *HumanFormatter) Pair(result models.PairResult) error {
	if result.Outcome == models.OutcomeError {
		return f.Error(result.Error)
	}
	if f.quiet {
		return nil
	}

	var verb string
	switch result.Outcome {
	case models.OutcomeSameFile:
		verb = "are the same file"
	case models.OutcomeDifferentSizes:
		verb = "are different sizes"
	case models.OutcomeDifferentFiles:
		verb = "are different files"
	case models.OutcomeLinked:
		verb = "are the same file, linked"
	default:
		return fmt.Errorf("unknown outcome: %s", result.Outcome)
	}

	_, err := fmt.Fprintf(f.writer, "%s and %s %s\n", result.PathA, result.PathB, verb)
	return err
}

// TypeMismatch reports two top-level paths of different kinds.
// Written even in quiet mode since the run fails.
func (f *HumanFormatter) TypeMismatch(pathA, pathB string) error {
	_, err := fmt.Fprintf(f.writer, "%s and %s are different types\n", pathA, pathB)
	return err
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	_, werr := fmt.Fprintf(f.errWriter, "Error: %v\n", err)
	return werr
}

// Complete displays the run summary
func (f *HumanFormatter) Complete(report *models.MergeReport) error {
	s := report.Stats
	w := f.writer

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Merge completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Directories visited: %d\n", s.DirsVisited)
	fmt.Fprintf(w, "  File pairs compared: %d\n", s.PairsCompared)
	fmt.Fprintf(w, "    Linked:            %d\n", s.FilesLinked)
	fmt.Fprintf(w, "    Already linked:    %d\n", s.AlreadyLinked)
	fmt.Fprintf(w, "    Different sizes:   %d\n", s.DifferentSizes)
	fmt.Fprintf(w, "    Different content: %d\n", s.DifferentContent)
	fmt.Fprintf(w, "    Errors:            %d\n", s.PairsErrored)
	fmt.Fprintf(w, "  Entries skipped:     %d (hidden %d, excluded %d, cycles %d)\n",
		s.EntriesSkipped, s.HiddenSkipped, s.Excluded, s.CyclesSkipped)
	fmt.Fprintf(w, "  Data compared:       %s\n", formatBytes(s.BytesCompared))
	_, err := fmt.Fprintf(w, "  Space reclaimed:     %s\n", formatBytes(s.BytesReclaimed))
	return err
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
