package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/mergeln/pkg/models"
)

// WriteDifferencesReport writes the pairs that were left unlinked to a file.
// Format can be "human" or "json". No file is created when every compared
// pair was consolidated.
func WriteDifferencesReport(report *models.MergeReport, path string, format string) error {
	if len(report.Differences) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create differences file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeDifferencesJSON(report, file)
	default: // "human"
		err = writeDifferencesHuman(report, file)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

var differenceSections = []struct {
	outcome models.Outcome
	label   string
}{
	{models.OutcomeError, "Errors"},
	{models.OutcomeDifferentSizes, "Different Sizes"},
	{models.OutcomeDifferentFiles, "Different Content"},
}

// writeDifferencesHuman writes differences in human-readable format
func writeDifferencesHuman(report *models.MergeReport, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "First:  %s\n", report.PathA)
	fmt.Fprintf(w, "Second: %s\n\n", report.PathB)
	fmt.Fprintf(w, "Total Differences: %d\n\n", len(report.Differences))

	byOutcome := make(map[models.Outcome][]models.Difference)
	for _, diff := range report.Differences {
		byOutcome[diff.Outcome] = append(byOutcome[diff.Outcome], diff)
	}

	for _, section := range differenceSections {
		diffs := byOutcome[section.outcome]
		if len(diffs) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d pairs)", section.label, len(diffs))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, diff := range diffs {
			fmt.Fprintf(w, "  %s\n", diff.PathA)
			fmt.Fprintf(w, "  %s\n", diff.PathB)
			if diff.Outcome != models.OutcomeError {
				fmt.Fprintf(w, "    Sizes:   %s / %s\n", formatBytes(diff.SizeA), formatBytes(diff.SizeB))
			}
			if diff.Details != "" {
				fmt.Fprintf(w, "    Details: %s\n", diff.Details)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	return nil
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.MergeReport, w io.Writer) error {
	output := struct {
		Generated   string              `json:"generated"`
		OperationID string              `json:"operation_id"`
		PathA       string              `json:"path_a"`
		PathB       string              `json:"path_b"`
		TotalCount  int                 `json:"total_count"`
		Differences []models.Difference `json:"differences"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		OperationID: report.OperationID,
		PathA:       report.PathA,
		PathB:       report.PathB,
		TotalCount:  len(report.Differences),
		Differences: report.Differences,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
