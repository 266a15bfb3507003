package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/mergeln/pkg/models"
)

// JSONFormatter writes one JSON object per line for automation and scripting.
// Pair outcomes go to the normal writer, errors to the error writer.
type JSONFormatter struct {
	out   *json.Encoder
	err   *json.Encoder
	quiet bool
}

// JSONEvent is a single line of JSON output
type JSONEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	Type           string    `json:"type"`
	PathA          string    `json:"path_a,omitempty"`
	PathB          string    `json:"path_b,omitempty"`
	Outcome        string    `json:"outcome,omitempty"`
	Size           int64     `json:"size,omitempty"`
	BytesReclaimed int64     `json:"bytes_reclaimed,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// JSONSummary is the last line written when a summary is requested
type JSONSummary struct {
	Timestamp   time.Time         `json:"timestamp"`
	Type        string            `json:"type"`
	OperationID string            `json:"operation_id"`
	PathA       string            `json:"path_a"`
	PathB       string            `json:"path_b"`
	Duration    string            `json:"duration"`
	DurationMs  int64             `json:"duration_ms"`
	Stats       models.Statistics `json:"stats"`
	Errors      []JSONErrorData   `json:"errors,omitempty"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// NewJSONFormatter creates a JSON lines formatter. In quiet mode only errors
// and the summary are written.
func NewJSONFormatter(writer, errWriter io.Writer, quiet bool) *JSONFormatter {
	if writer == nil {
		writer = io.Discard
	}
	if errWriter == nil {
		errWriter = io.Discard
	}
	return &JSONFormatter{
		out:   json.NewEncoder(writer),
		err:   json.NewEncoder(errWriter),
		quiet: quiet,
	}
}

// Pair reports the outcome of one file pair
func (f *JSONFormatter) Pair(result models.PairResult) error {
	if result.Failed() {
		return f.err.Encode(JSONEvent{
			Timestamp: time.Now(),
			Type:      "error",
			PathA:     result.PathA,
			PathB:     result.PathB,
			Outcome:   string(result.Outcome),
			Error:     errorString(result.Error),
		})
	}
	if f.quiet {
		return nil
	}

	return f.out.Encode(JSONEvent{
		Timestamp:      time.Now(),
		Type:           "pair",
		PathA:          result.PathA,
		PathB:          result.PathB,
		Outcome:        string(result.Outcome),
		Size:           result.Size,
		BytesReclaimed: result.BytesReclaimed,
		Reason:         result.Reason,
	})
}

// TypeMismatch reports two top-level paths of different kinds
func (f *JSONFormatter) TypeMismatch(pathA, pathB string) error {
	return f.out.Encode(JSONEvent{
		Timestamp: time.Now(),
		Type:      "type_mismatch",
		PathA:     pathA,
		PathB:     pathB,
		Outcome:   "different_types",
	})
}

// Error reports an error
func (f *JSONFormatter) Error(err error) error {
	return f.err.Encode(JSONEvent{
		Timestamp: time.Now(),
		Type:      "error",
		Error:     errorString(err),
	})
}

// Complete writes the run summary
func (f *JSONFormatter) Complete(report *models.MergeReport) error {
	var errs []JSONErrorData
	for _, e := range report.Errors {
		errs = append(errs, JSONErrorData{
			Path:      e.Path,
			Operation: e.Operation,
			Error:     e.Error,
		})
	}

	return f.out.Encode(JSONSummary{
		Timestamp:   time.Now(),
		Type:        "summary",
		OperationID: report.OperationID,
		PathA:       report.PathA,
		PathB:       report.PathB,
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats:       report.Stats,
		Errors:      errs,
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
