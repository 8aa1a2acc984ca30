// =============================================================================
// T-ID CSV Renumberer - XLSX Change Report
// =============================================================================
//
// This module writes the change report as an Excel workbook:
//   - Changes : Line | Old ID | New ID | Changed, one row per identifier
//   - Summary : run fields as name/value pairs
//
// Line numbers are 1-based file lines, matching the text report.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used in XLSX reports.
const (
	ChangesSheet = "Changes"
	SummarySheet = "Summary"
)

// changeColumns are the headers of the Changes sheet.
var changeColumns = []interface{}{"Line", "Old ID", "New ID", "Changed"}

// WriteXLSX writes s as a workbook at path.
//
// The Changes sheet holds one row per renumbered identifier; the Summary
// sheet holds the run fields as name/value pairs.
func WriteXLSX(path string, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChangesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	// Changes
	if err := f.SetSheetRow(ChangesSheet, "A1", &changeColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(ChangesSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for i, c := range s.Changes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Line + 1, c.Old, c.New, !c.Unchanged()}
		if err := f.SetSheetRow(ChangesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write change row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(ChangesSheet, "A", "D", 12); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	// Summary
	fields := [][]interface{}{
		{"Run ID", s.RunID},
		{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Path", s.Path},
		{"Existed", s.Existed},
		{"Bytes", s.ByteLength},
		{"Encoding", encodingLabel(s)},
		{"Lines", s.Lines},
		{"IDs Updated", s.Updated},
		{"Dry Run", s.DryRun},
		{"Written", s.Written},
		{"Duration", s.Elapsed.String()},
	}
	for i := range fields {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &fields[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 48); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
