// =============================================================================
// T-ID CSV Renumberer - Transformer
// =============================================================================
//
// The transformer is the pure heart of the renumberer: it takes the decoded
// lines and a starting counter and returns the renumbered lines. It never
// touches the filesystem and never logs.
//
// IDENTIFIER SHAPE:
//   "T-" followed by exactly three decimal digits, followed by a word
//   boundary. "T-001," and "T-001" at end of line match; "T-0012" and
//   "T-001x" do not. Only the first match in a line is rewritten.
//
// NUMBERING:
//   The header (line 0) is copied as-is. Each later line that contains an
//   identifier receives T-<counter> zero-padded to three digits and the
//   counter advances by one; lines without an identifier are copied and do
//   not consume a number. Counters past 999 widen (T-1000).
//
// =============================================================================

package renumber

import (
	"fmt"
	"regexp"
)

// identifierPattern captures the identifier in group 1. The trailing class
// stands in for \b, which RE2 only supports for ASCII word characters.
var identifierPattern = regexp.MustCompile(`(T-\p{Nd}{3})(?:[^\p{L}\p{N}_]|$)`)

// FormatID renders the identifier for counter n.
func FormatID(n int) string {
	return fmt.Sprintf("T-%03d", n)
}

// FindID returns the byte offsets of the first identifier in line, or
// ok=false when the line has none.
func FindID(line string) (start, end int, ok bool) {
	loc := identifierPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	return loc[2], loc[3], true
}

// =============================================================================
// TRANSFORMATION
// =============================================================================

// Change records one rewritten identifier.
type Change struct {
	// Line is the 0-based index of the line in the document.
	Line int

	// Old is the identifier found in the input.
	Old string

	// New is the identifier written in its place.
	New string
}

// Unchanged reports whether the replacement left the text as it was.
func (c Change) Unchanged() bool {
	return c.Old == c.New
}

// Transformation is the outcome of Transform.
type Transformation struct {
	// Lines holds the output lines, same length and order as the input.
	Lines []string

	// Next is the counter value after the last replacement.
	Next int

	// Changes lists every replacement in line order.
	Changes []Change
}

// Replaced returns the number of identifiers rewritten.
func (t *Transformation) Replaced() int {
	return len(t.Changes)
}

// Transform renumbers lines starting at counter start.
//
// PARAMETERS:
//   - lines: The document lines. lines[0] is the header and is never changed.
//   - start: The first identifier number to hand out (normally 1).
//
// RETURNS:
//   - A Transformation whose Lines has the same length as lines and whose
//     Next equals start plus the number of replacements.
func Transform(lines []string, start int) *Transformation {
	out := &Transformation{
		Lines: make([]string, len(lines)),
		Next:  start,
	}
	for i, line := range lines {
		if i == 0 {
			out.Lines[i] = line
			continue
		}
		from, to, ok := FindID(line)
		if !ok {
			out.Lines[i] = line
			continue
		}
		id := FormatID(out.Next)
		out.Lines[i] = line[:from] + id + line[to:]
		out.Changes = append(out.Changes, Change{Line: i, Old: line[from:to], New: id})
		out.Next++
	}
	return out
}
