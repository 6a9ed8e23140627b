package classfile

import (
	"strings"
	"unicode/utf8"
)

// decodeModifiedUTF8 converts the class file string encoding to Go text.
// NUL arrives as the two byte form C0 80 and supplementary characters as
// surrogate pairs of three byte sequences. Lone surrogates and malformed
// sequences become utf8.RuneError.
func decodeModifiedUTF8(b []byte) string {
	ascii := true
	for _, c := range b {
		if c&0x80 != 0 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, n := decodeMUTF8Rune(b[i:])
		if n == 0 {
			sb.WriteRune(utf8.RuneError)
			i++
			continue
		}
		i += n
		if r >= 0xD800 && r <= 0xDBFF {
			if low, m := decodeMUTF8Rune(b[i:]); m == 3 && low >= 0xDC00 && low <= 0xDFFF {
				sb.WriteRune(0x10000 + (r-0xD800)<<10 + (low - 0xDC00))
				i += m
				continue
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// decodeMUTF8Rune decodes one 1, 2 or 3 byte unit. n is 0 when b does not
// start with a well formed unit.
func decodeMUTF8Rune(b []byte) (r rune, n int) {
	if len(b) == 0 {
		return 0, 0
	}
	c := b[0]
	switch {
	case c&0x80 == 0:
		if c == 0 {
			return 0, 0
		}
		return rune(c), 1
	case c&0xE0 == 0xC0:
		if len(b) < 2 || b[1]&0xC0 != 0x80 {
			return 0, 0
		}
		return rune(c&0x1F)<<6 | rune(b[1]&0x3F), 2
	case c&0xF0 == 0xE0:
		if len(b) < 3 || b[1]&0xC0 != 0x80 || b[2]&0xC0 != 0x80 {
			return 0, 0
		}
		return rune(c&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), 3
	}
	return 0, 0
}

// ValidModifiedUTF8 reports whether b is well formed modified UTF-8: no
// raw NUL bytes, no four byte forms, no truncated sequences.
func ValidModifiedUTF8(b []byte) bool {
	for i := 0; i < len(b); {
		_, n := decodeMUTF8Rune(b[i:])
		if n == 0 {
			return false
		}
		i += n
	}
	return true
}
