// =============================================================================
// T-ID CSV Renumberer - Change Reports
// =============================================================================
//
// After a run the renumberer can leave a record of what it changed:
//   - *.xlsx : a workbook with a "Changes" sheet and a "Summary" sheet
//   - other  : a plain-text processing summary
//
// Line numbers in reports are 1-based file line numbers (the header is
// line 1), which is what people see in an editor.
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
)

// Summary is the data written to a report.
type Summary struct {
	GeneratedAt time.Time
	RunID       string
	Path        string
	Existed     bool
	ByteLength  int
	Encoding    string
	Fallback    bool
	Lines       int
	Updated     int
	DryRun      bool
	Written     bool
	Elapsed     time.Duration
	Changes     []renumber.Change
}

// FromResult builds a Summary from a finished run.
func FromResult(r *renumber.Result) Summary {
	return Summary{
		GeneratedAt: time.Now(),
		RunID:       r.RunID,
		Path:        r.Path,
		Existed:     r.Existed,
		ByteLength:  r.ByteLength,
		Encoding:    r.Encoding,
		Fallback:    r.Fallback,
		Lines:       r.Lines,
		Updated:     r.Updated,
		DryRun:      r.DryRun,
		Written:     r.Written,
		Elapsed:     r.Elapsed,
		Changes:     r.Changes,
	}
}

// Write writes s to path, choosing the format from the file extension.
func Write(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(path, s)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	if err := WriteText(file, s); err != nil {
		return err
	}
	return file.Close()
}

// WriteText writes s as a plain-text processing summary.
func WriteText(w io.Writer, s Summary) error {
	writer := bufio.NewWriter(w)

	mode := "write"
	if s.DryRun {
		mode = "dry run"
	}

	header := fmt.Sprintf("T-ID CSV Renumberer - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Generated:      %s\n"+
		"  Mode:           %s\n"+
		"  Duration:       %s\n\n"+
		"Target:\n"+
		"  Path:           %s\n"+
		"  Existed:        %t\n"+
		"  Bytes:          %d\n"+
		"  Encoding:       %s\n"+
		"  Lines:          %d\n"+
		"  IDs Updated:    %d\n"+
		"  Written:        %t\n\n",
		s.RunID,
		s.GeneratedAt.Format("2006-01-02 15:04:05"),
		mode,
		s.Elapsed.String(),
		s.Path,
		s.Existed,
		s.ByteLength,
		encodingLabel(s),
		s.Lines,
		s.Updated,
		s.Written)
	writer.WriteString(header)

	if len(s.Changes) > 0 {
		writer.WriteString("Changes:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, c := range s.Changes {
			marker := ""
			if c.Unchanged() {
				marker = "  (unchanged)"
			}
			writer.WriteString(fmt.Sprintf("  Line %-6d %s -> %s%s\n", c.Line+1, c.Old, c.New, marker))
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func encodingLabel(s Summary) string {
	if s.Fallback {
		return s.Encoding + " (fallback)"
	}
	return s.Encoding
}
