package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSummary() Summary {
	return FromResult(&renumber.Result{
		RunID:      "run-1",
		Path:       "/data/t.csv",
		Existed:    true,
		ByteLength: 40,
		Encoding:   "shift_jis",
		Fallback:   true,
		Lines:      4,
		Updated:    2,
		Written:    true,
		Elapsed:    3 * time.Millisecond,
		Changes: []renumber.Change{
			{Line: 1, Old: "T-999", New: "T-001"},
			{Line: 3, Old: "T-002", New: "T-002"},
		},
	})
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, "Run ID:         run-1")
	assert.Contains(t, out, "Path:           /data/t.csv")
	assert.Contains(t, out, "Encoding:       shift_jis (fallback)")
	assert.Contains(t, out, "IDs Updated:    2")
	assert.Contains(t, out, "Mode:           write")
	assert.Contains(t, out, "Line 2      T-999 -> T-001\n")
	assert.Contains(t, out, "Line 4      T-002 -> T-002  (unchanged)\n")
	assert.Contains(t, out, "End of Summary")
}

func TestWriteTextDryRunWithoutChanges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Summary{Path: "/data/t.csv", Encoding: "utf-8", DryRun: true}))

	out := buf.String()
	assert.Contains(t, out, "Mode:           dry run")
	assert.NotContains(t, out, "Changes:")
}

func TestWriteDispatchesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "changes.txt")
	require.NoError(t, Write(path, sampleSummary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Processing Summary")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.xlsx")
	require.NoError(t, Write(path, sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ChangesSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ChangesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Line", "Old ID", "New ID", "Changed"}, rows[0])
	assert.Equal(t, []string{"2", "T-999", "T-001"}, rows[1][:3])
	assert.Equal(t, []string{"4", "T-002", "T-002"}, rows[2][:3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range summary {
		require.Len(t, row, 2)
		values[row[0]] = row[1]
	}
	assert.Equal(t, "run-1", values["Run ID"])
	assert.Equal(t, "/data/t.csv", values["Path"])
	assert.Equal(t, "2", values["IDs Updated"])
	assert.Equal(t, "shift_jis (fallback)", values["Encoding"])
}
