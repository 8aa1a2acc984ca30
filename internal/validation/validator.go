// =============================================================================
// T-ID CSV Renumberer - Sequence Validation
// =============================================================================
//
// This module checks whether a file's identifiers are already in canonical
// order, using the change list of an in-memory renumbering pass:
//   - sequence : an identifier differs from the one a run would assign (error)
//   - width    : an assigned identifier is wider than three digits (warning)
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error carries the 1-based file line and both identifiers
//   - Warnings never make a file invalid
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// idWidth is the zero-padded width of a canonical identifier, "T-" included.
const idWidth = len("T-000")

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Line is the 1-based line number in the file.
	Line int

	// Value is the identifier found in the file.
	Value string

	// Expected is the identifier a run would assign.
	Expected string

	// Rule is the rule that produced the finding.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Line %d: %s (value: '%s', expected: '%s')",
		strings.ToUpper(e.Severity),
		e.Line,
		e.Message,
		e.Value,
		e.Expected,
	)
}

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	// ErrorCount is the number of errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// IDsChecked is the number of identifiers examined.
	IDsChecked int
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateSequence checks the changes of a renumbering pass.
func ValidateSequence(changes []renumber.Change) *ValidationResult {
	result := &ValidationResult{
		IsValid:    true,
		IDsChecked: len(changes),
	}

	for _, c := range changes {
		if !c.Unchanged() {
			result.add(&ValidationError{
				Severity: SeverityError,
				Line:     c.Line + 1,
				Value:    c.Old,
				Expected: c.New,
				Rule:     "sequence",
				Message:  "identifier is out of sequence",
			})
		}
		if len(c.New) > idWidth {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Line:     c.Line + 1,
				Value:    c.Old,
				Expected: c.New,
				Rule:     "width",
				Message:  "identifier exceeds three digits",
			})
		}
	}

	return result
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
		return
	}
	r.WarningCount++
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors.\n"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}
