package validation

import (
	"testing"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSequenceAccepts(t *testing.T) {
	tr := renumber.Transform([]string{"id", "T-001", "x", "T-002"}, 1)

	result := ValidateSequence(tr.Changes)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.IDsChecked)
	assert.Equal(t, "No validation errors.\n", FormatErrors(result.Errors))
}

func TestValidateSequenceReportsOutOfOrder(t *testing.T) {
	tr := renumber.Transform([]string{"id", "T-001", "T-005", "T-004"}, 1)

	result := ValidateSequence(tr.Changes)
	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.ErrorCount)
	require.Len(t, result.Errors, 2)

	first := result.Errors[0]
	assert.Equal(t, SeverityError, first.Severity)
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, "T-005", first.Value)
	assert.Equal(t, "T-002", first.Expected)
	assert.Equal(t, "[ERROR] Line 3: identifier is out of sequence (value: 'T-005', expected: 'T-002')", first.Error())

	out := FormatErrors(result.Errors)
	assert.Contains(t, out, "Validation completed with 2 finding(s)")
	assert.Contains(t, out, "2. [ERROR] Line 4")
}

func TestValidateSequenceWarnsOnWideIDs(t *testing.T) {
	changes := []renumber.Change{{Line: 1000, Old: "T-123", New: "T-1000"}}

	result := ValidateSequence(changes)
	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, "width", result.Errors[1].Rule)
}

func TestValidateSequenceWarningOnlyIsValid(t *testing.T) {
	changes := []renumber.Change{{Line: 1000, Old: "T-1000", New: "T-1000"}}

	result := ValidateSequence(changes)
	assert.True(t, result.IsValid)
	assert.Equal(t, 1, result.WarningCount)
}
