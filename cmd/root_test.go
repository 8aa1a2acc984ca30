package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// execute runs the command tree with fresh flag values.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfgFile, targetFile, reportFile, logFormat = "", "", "", ""
	verbose, dryRun = false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeTarget(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "t.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readTarget(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootRenumbersFile(t *testing.T) {
	path := writeTarget(t, "id,name\nT-999,Alice\nfoo,Bob\nT-123,Carol\n")

	stdout, stderr, err := execute(t, "--file", path)
	require.NoError(t, err)

	assert.Equal(t, "id,name\nT-001,Alice\nfoo,Bob\nT-002,Carol\n", readTarget(t, path))
	assert.Equal(t, "Updated "+path+" with 2 ids.\n", stdout)
	assert.Contains(t, stderr, "target path")
	assert.Contains(t, stderr, "exists=true")
	assert.Contains(t, stderr, "bytes=40")
	assert.Contains(t, stderr, "encoding=utf-8")
}

func TestRootDryRunLeavesFile(t *testing.T) {
	body := "id\nT-050\nT-060\n"
	path := writeTarget(t, body)

	stdout, _, err := execute(t, "--file", path, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, body, readTarget(t, path))
	assert.Contains(t, stdout, "would have 2 ids updated")
}

func TestRootEmptyFileFails(t *testing.T) {
	path := writeTarget(t, "")

	_, _, err := execute(t, "--file", path)
	assert.ErrorIs(t, err, renumber.ErrEmptyDocument)
	assert.Equal(t, "", readTarget(t, path))
}

func TestRootMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	_, stderr, err := execute(t, "--file", path)
	require.Error(t, err)
	var fileErr *renumber.FileError
	assert.ErrorAs(t, err, &fileErr)
	assert.Contains(t, stderr, "exists=false")
	assert.NoFileExists(t, path)
}

func TestRootUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	target := filepath.Join(dir, "data", "t.csv")
	require.NoError(t, os.WriteFile(target, []byte("h\nT-777\n"), 0o644))
	cfgPath := filepath.Join(dir, "renumber.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
target_file: data/t.csv
report_file: reports/changes.txt
log:
  format: json
`), 0o644))

	stdout, stderr, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "h\nT-001\n", readTarget(t, target))
	assert.Contains(t, stdout, "with 1 ids")
	assert.Contains(t, stderr, `"msg":"target path"`)
	assert.FileExists(t, filepath.Join(dir, "reports", "changes.txt"))
}

func TestRootMissingExplicitConfigFails(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRootWritesXLSXReport(t *testing.T) {
	path := writeTarget(t, "id\nT-010\nT-020\n")
	reportPath := filepath.Join(t.TempDir(), "changes.xlsx")

	_, _, err := execute(t, "--file", path, "--report", reportPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(reportPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Changes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "T-010", rows[1][1])
	assert.Equal(t, "T-001", rows[1][2])
}

func TestCheckPassesOnSequentialFile(t *testing.T) {
	body := "id\nT-001\nnone\nT-002\n"
	path := writeTarget(t, body)

	stdout, _, err := execute(t, "check", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 ids, already sequential")
	assert.Equal(t, body, readTarget(t, path))
}

func TestCheckFailsOnGaps(t *testing.T) {
	body := "id\nT-001\nT-003\n"
	path := writeTarget(t, body)

	stdout, _, err := execute(t, "check", "--file", path)
	assert.ErrorIs(t, err, renumber.ErrNotSequential)
	assert.Contains(t, stdout, "Line 3: identifier is out of sequence (value: 'T-003', expected: 'T-002')")
	assert.Equal(t, body, readTarget(t, path))
}

func TestCheckFailsWhenRunWouldRewrite(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"crlf", "id\r\nT-001,a\r\nT-002,b\r\n", "line endings would be normalized"},
		{"no trailing newline", "id\nT-001,a", "line endings would be normalized"},
		{"shift_jis", "id\n\x82\xa0,T-001\n", "encoded as shift_jis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTarget(t, tt.body)

			stdout, _, err := execute(t, "check", "--file", path)
			assert.ErrorIs(t, err, renumber.ErrContentChanged)
			assert.Contains(t, stdout, "ids in sequence, but")
			assert.Contains(t, stdout, tt.reason)
			assert.NotContains(t, stdout, "already sequential")
			assert.Equal(t, tt.body, readTarget(t, path))
		})
	}
}

func TestCheckPassesAfterRun(t *testing.T) {
	path := writeTarget(t, "id\r\n\x82\xa0,T-001\r\n")

	_, _, err := execute(t, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "id\nあ,T-001\n", readTarget(t, path))

	stdout, _, err := execute(t, "check", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 ids, already sequential")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "T-ID CSV Renumberer")
	assert.Contains(t, stdout, "Version:    "+Version)
}
