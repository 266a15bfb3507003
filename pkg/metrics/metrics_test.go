package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/mergeln/pkg/models"
)

func sampleReport() *models.MergeReport {
	end := time.Unix(1700000000, 0)
	return &models.MergeReport{
		OperationID: "op-1",
		StartTime:   end.Add(-2 * time.Second),
		EndTime:     end,
		Duration:    2 * time.Second,
		Stats: models.Statistics{
			PairsCompared:    6,
			FilesLinked:      3,
			AlreadyLinked:    1,
			DifferentSizes:   1,
			DifferentContent: 1,
			DirsVisited:      4,
			HiddenSkipped:    2,
			Excluded:         1,
			BytesCompared:    4096,
			BytesReclaimed:   2048,
		},
		Errors: []models.MergeError{{Path: "b/x", Operation: "open"}},
	}
}

func TestRunMetrics_Observe(t *testing.T) {
	m := NewRunMetrics()
	m.Observe(sampleReport())

	assert.Equal(t, float64(3), testutil.ToFloat64(m.pairs.WithLabelValues("linked")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pairs.WithLabelValues("same_file")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.pairs.WithLabelValues("error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.skipped.WithLabelValues("hidden")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.dirsVisited))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errors))
	assert.Equal(t, float64(2048), testutil.ToFloat64(m.bytesReclaimed))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.duration))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(m.lastRun))

	// 5 outcomes + 4 skip reasons + 6 plain gauges
	assert.Equal(t, 15, testutil.CollectAndCount(m.Registry()))
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mergeln.prom")

	require.NoError(t, WriteTextfile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `mergeln_pairs{outcome="linked"} 3`)
	assert.Contains(t, content, "mergeln_reclaimed_bytes 2048")
	assert.Contains(t, content, "# HELP mergeln_directories_visited")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file should be left behind")
}
