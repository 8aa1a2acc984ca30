// =============================================================================
// T-ID CSV Renumberer - Strict Shift_JIS
// =============================================================================
//
// golang.org/x/text resolves the "shift_jis" label to Windows-31J (CP932), a
// superset of Shift_JIS. This module narrows it back to plain JIS X 0208
// Shift_JIS:
//   - 0x80, 0xA0 and lead bytes 0xEB-0xFC are rejected
//   - JIS rows 9-15 (NEC row 13 lives here) are rejected
//   - Six row 1-2 symbols decode to their JIS code points instead of the
//     fullwidth forms Windows-31J uses (WAVE DASH, DOUBLE VERTICAL LINE,
//     MINUS SIGN, CENT, POUND, NOT)
//
// Unassigned cells inside the accepted range still come out of the CP932
// table as U+FFFD and are rejected by decodeWith.
//
// =============================================================================

package csvparser

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ShiftJIS is JIS X 0208 Shift_JIS without vendor extensions.
var ShiftJIS encoding.Encoding = shiftJIS{}

// cp932ToJIS maps the Windows-31J decodings that differ from JIS X 0208.
var cp932ToJIS = map[rune]rune{
	'\uff5e': '\u301c', // 0x8160 WAVE DASH
	'\u2225': '\u2016', // 0x8161 DOUBLE VERTICAL LINE
	'\uff0d': '\u2212', // 0x817C MINUS SIGN
	'\uffe0': '\u00a2', // 0x8191 CENT SIGN
	'\uffe1': '\u00a3', // 0x8192 POUND SIGN
	'\uffe2': '\u00ac', // 0x81CA NOT SIGN
}

var jisToCP932 = func() map[rune]rune {
	m := make(map[rune]rune, len(cp932ToJIS))
	for k, v := range cp932ToJIS {
		m[v] = k
	}
	return m
}()

type shiftJIS struct{}

func (shiftJIS) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: transform.Chain(
		&jisValidator{},
		japanese.ShiftJIS.NewDecoder(),
		runes.Map(func(r rune) rune { return remap(cp932ToJIS, r) }),
	)}
}

func (shiftJIS) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: transform.Chain(
		runes.Map(func(r rune) rune { return remap(jisToCP932, r) }),
		japanese.ShiftJIS.NewEncoder(),
	)}
}

func (shiftJIS) String() string {
	return "Shift_JIS (JIS X 0208)"
}

func remap(m map[rune]rune, r rune) rune {
	if to, ok := m[r]; ok {
		return to
	}
	return r
}

// jisValidator copies its input unchanged and fails on the first byte
// sequence that is not JIS X 0208 Shift_JIS.
type jisValidator struct {
	offset int
}

func (v *jisValidator) Reset() {
	v.offset = 0
}

func (v *jisValidator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { v.offset += nSrc }()

	for nSrc < len(src) {
		c0, size := src[nSrc], 1
		switch {
		case c0 < 0x80, 0xa1 <= c0 && c0 <= 0xdf:
		case 0x81 <= c0 && c0 <= 0x9f, 0xe0 <= c0 && c0 <= 0xea:
			if nSrc+1 >= len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, fmt.Errorf("%w: incomplete multibyte sequence at offset %d",
					errUnmappable, v.offset+nSrc)
			}
			c1 := src[nSrc+1]
			if !isJISTrail(c1) || isExcludedRow(jisRow(c0, c1)) {
				return nDst, nSrc, fmt.Errorf("%w: %#02x %#02x at offset %d",
					errUnmappable, c0, c1, v.offset+nSrc)
			}
			size = 2
		default:
			return nDst, nSrc, fmt.Errorf("%w: %#02x at offset %d", errUnmappable, c0, v.offset+nSrc)
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

func isJISTrail(c byte) bool {
	return (0x40 <= c && c <= 0x7e) || (0x80 <= c && c <= 0xfc)
}

// jisRow returns the 1-based JIS X 0208 row of a valid lead/trail pair.
func jisRow(c0, c1 byte) int {
	lead := int(c0) - 0x81
	if c0 >= 0xe0 {
		lead = int(c0) - 0xc1
	}
	row := 2*lead + 1
	if c1 >= 0x9f {
		row++
	}
	return row
}

// Rows 9-15 are unassigned in JIS X 0208; Windows-31J puts NEC specials
// in row 13.
func isExcludedRow(row int) bool {
	return row >= 9 && row <= 15
}
