// =============================================================================
// T-ID CSV Renumberer - CSV Text Parser
// =============================================================================
//
// This module turns the raw bytes of the target file into an ordered list of
// lines and back again. It handles:
//   - Best-effort decoding over an ordered list of candidate encodings
//     (see decode.go)
//   - Splitting decoded text on every recognised line boundary
//   - Joining lines back into newline-terminated UTF-8 text
//
// Fields are never parsed: the renumberer works on whole lines, so quoted
// fields and embedded delimiters pass through untouched.
//
// =============================================================================

package csvparser

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyDocument is returned when decoded text contains no lines at all.
var ErrEmptyDocument = errors.New("empty file")

// =============================================================================
// DOCUMENT STRUCTURE
// =============================================================================

// Document is a decoded file split into lines.
type Document struct {
	// Lines holds every line without its terminator. Lines[0] is the header.
	Lines []string

	// Encoding is the name of the candidate that decoded the bytes.
	Encoding string

	// Fallback is true when the first candidate failed.
	Fallback bool

	// ByteLength is the size of the raw input.
	ByteLength int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse decodes data with the given candidates and splits it into lines.
//
// RETURNS:
//   - The parsed document.
//   - A *DecodeError when no candidate decodes data.
//   - ErrEmptyDocument when the decoded text yields zero lines.
func Parse(data []byte, candidates []Candidate) (*Document, error) {
	decoded, err := Decode(data, candidates)
	if err != nil {
		return nil, err
	}

	lines := SplitLines(decoded.Text)
	if len(lines) == 0 {
		return nil, ErrEmptyDocument
	}

	return &Document{
		Lines:      lines,
		Encoding:   decoded.Encoding,
		Fallback:   decoded.Fallback,
		ByteLength: len(data),
	}, nil
}

// SplitLines splits text on line boundaries and drops the terminators.
//
// Recognised boundaries are \n, \r\n, \r, \v, \f, the file/group/record
// separators \x1c-\x1e, NEL (U+0085), LINE SEPARATOR and PARAGRAPH
// SEPARATOR. A trailing boundary does not produce an empty last line, and
// empty text yields no lines.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		next := i + size
		if r == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		start, i = next, next
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Join joins lines with "\n" and terminates the result with exactly one "\n".
func Join(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
