// =============================================================================
// T-ID CSV Renumberer - Candidate Decoding
// =============================================================================
//
// This module decodes raw bytes by trying candidate encodings in order:
//   - utf-8 is validated strictly, byte for byte
//   - shift_jis means JIS X 0208 Shift_JIS (see shiftjis.go), not the
//     Windows-31J superset x/text registers under that label
//   - any other WHATWG label decodes through golang.org/x/text
//
// The first candidate that decodes without an unmappable byte wins. When
// none does, a DecodeError lists every attempt.
//
// =============================================================================

package csvparser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DefaultEncodings is the decoding order used when none is configured.
var DefaultEncodings = []string{"utf-8", "shift_jis"}

const (
	utf8Name   = "utf-8"
	windows31J = "windows-31j"
)

// errUnmappable reports a byte the decoder had to replace with U+FFFD.
var errUnmappable = errors.New("invalid byte sequence")

// Candidate is one encoding to try while decoding.
type Candidate struct {
	Name     string
	Encoding encoding.Encoding
}

// Attempt records the outcome of trying a single candidate.
type Attempt struct {
	Encoding string
	Err      error
}

// Decoded is the result of a successful decode.
type Decoded struct {
	Text     string
	Encoding string
	Fallback bool
	Attempts []Attempt
}

// DecodeError is returned when no candidate could decode the input.
type DecodeError struct {
	Attempts []Attempt
}

func (e *DecodeError) Error() string {
	if len(e.Attempts) == 0 {
		return "decode error: no candidate encodings"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Encoding, a.Err))
	}
	return "decode error: " + strings.Join(parts, "; ")
}

// Unwrap exposes the cause of every failed attempt.
func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// LookupEncodings resolves encoding labels ("utf-8", "Shift_JIS", "euc-jp",
// "windows-1252", ...) into candidates, keeping their order. Shift_JIS
// labels resolve to the strict JIS X 0208 decoder; "windows-31j" and
// "ms932" keep the Windows-31J superset.
func LookupEncodings(names []string) ([]Candidate, error) {
	if len(names) == 0 {
		names = DefaultEncodings
	}
	candidates := make([]Candidate, 0, len(names))
	for _, label := range names {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
		}
		name, err := htmlindex.Name(enc)
		if err != nil {
			name = strings.ToLower(strings.TrimSpace(label))
		}
		if enc == japanese.ShiftJIS {
			switch strings.ToLower(strings.TrimSpace(label)) {
			case windows31J, "ms932":
				name = windows31J
			default:
				enc = ShiftJIS
			}
		}
		candidates = append(candidates, Candidate{Name: name, Encoding: enc})
	}
	return candidates, nil
}

// Decode tries each candidate in order and returns the first strict success.
//
// utf-8 is validated directly. Every other candidate runs through its
// x/text decoder on a fresh transformer; output containing U+FFFD means a
// byte had no mapping, and the attempt fails.
func Decode(data []byte, candidates []Candidate) (*Decoded, error) {
	var attempts []Attempt
	for i, c := range candidates {
		text, err := decodeWith(data, c)
		if err != nil {
			attempts = append(attempts, Attempt{Encoding: c.Name, Err: err})
			continue
		}
		attempts = append(attempts, Attempt{Encoding: c.Name})
		return &Decoded{
			Text:     text,
			Encoding: c.Name,
			Fallback: i > 0,
			Attempts: attempts,
		}, nil
	}
	return nil, &DecodeError{Attempts: attempts}
}

func decodeWith(data []byte, c Candidate) (string, error) {
	if c.Name == utf8Name {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w at offset %d", errUnmappable, invalidUTF8Offset(data))
		}
		return string(data), nil
	}

	out, _, err := transform.Bytes(c.Encoding.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
		return "", fmt.Errorf("%w (decoded offset %d)", errUnmappable, i)
	}
	return string(out), nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
