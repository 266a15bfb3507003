package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/mergeln/pkg/models"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		events = append(events, event)
	}
	return events
}

func TestJSONFormatter_Pair(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewJSONFormatter(&out, &errOut, false)

	f.Pair(models.PairResult{PathA: "a/f", PathB: "b/f", Outcome: models.OutcomeLinked, Size: 10, BytesReclaimed: 10})
	f.Pair(models.PairResult{PathA: "a/g", PathB: "b/g", Outcome: models.OutcomeError, Error: errors.New("link b/g: permission denied")})

	events := decodeLines(t, &out)
	if len(events) != 1 {
		t.Fatalf("got %d events on stdout, want 1", len(events))
	}
	if events[0]["type"] != "pair" || events[0]["outcome"] != "linked" || events[0]["path_b"] != "b/f" {
		t.Errorf("unexpected pair event: %v", events[0])
	}
	if events[0]["bytes_reclaimed"] != float64(10) {
		t.Errorf("bytes_reclaimed = %v, want 10", events[0]["bytes_reclaimed"])
	}

	errEvents := decodeLines(t, &errOut)
	if len(errEvents) != 1 {
		t.Fatalf("got %d events on stderr, want 1", len(errEvents))
	}
	if errEvents[0]["type"] != "error" || errEvents[0]["error"] != "link b/g: permission denied" {
		t.Errorf("unexpected error event: %v", errEvents[0])
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewJSONFormatter(&out, &errOut, true)

	f.Pair(models.PairResult{PathA: "a/f", PathB: "b/f", Outcome: models.OutcomeSameFile})
	f.Error(errors.New("open a/dir: permission denied"))

	if out.Len() != 0 {
		t.Errorf("quiet mode wrote %q", out.String())
	}
	if len(decodeLines(t, &errOut)) != 1 {
		t.Error("errors must be written in quiet mode")
	}
}

func TestJSONFormatter_TypeMismatchAndComplete(t *testing.T) {
	var out bytes.Buffer
	f := NewJSONFormatter(&out, nil, true)

	f.TypeMismatch("file", "dir")
	f.Complete(&models.MergeReport{
		OperationID: "op-1",
		PathA:       "a",
		PathB:       "b",
		Duration:    1500 * time.Millisecond,
		Stats:       models.Statistics{PairsCompared: 3, FilesLinked: 2},
		Errors:      []models.MergeError{{Path: "b/x", Operation: "link", Error: "boom"}},
	})

	events := decodeLines(t, &out)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0]["type"] != "type_mismatch" || events[0]["outcome"] != "different_types" {
		t.Errorf("unexpected mismatch event: %v", events[0])
	}

	summary := events[1]
	if summary["type"] != "summary" || summary["duration_ms"] != float64(1500) {
		t.Errorf("unexpected summary: %v", summary)
	}
	stats, ok := summary["stats"].(map[string]any)
	if !ok || stats["files_linked"] != float64(2) || stats["pairs_compared"] != float64(3) {
		t.Errorf("unexpected stats: %v", summary["stats"])
	}
	if errs, ok := summary["errors"].([]any); !ok || len(errs) != 1 {
		t.Errorf("unexpected errors: %v", summary["errors"])
	}
}
