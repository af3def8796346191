// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package univalue

// isDigit returns whether the byte is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanDigits returns the position of the first non-digit at or after pos.
func scanDigits(s string, pos int) int {
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	return pos
}

// IsValidNumber returns whether s consists of exactly one JSON number token
// as defined by RFC 8259.  Leading or trailing whitespace, leading zeros,
// bare fractions, and the non-finite spellings such as NaN are all rejected.
//
// The numeric setters perform this check themselves and silently ignore
// input that fails it, so callers which need to distinguish invalid input may
// call this first.
func IsValidNumber(s string) bool {
	pos := 0
	if pos < len(s) && s[pos] == '-' {
		pos++
	}

	// Integer part.  A leading zero may not be followed by more digits.
	switch {
	case pos >= len(s):
		return false
	case s[pos] == '0':
		pos++
	case isDigit(s[pos]):
		pos = scanDigits(s, pos+1)
	default:
		return false
	}

	// Optional fraction which requires at least one digit.
	if pos < len(s) && s[pos] == '.' {
		end := scanDigits(s, pos+1)
		if end == pos+1 {
			return false
		}
		pos = end
	}

	// Optional exponent with optional sign and at least one digit.
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		pos++
		if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
			pos++
		}
		end := scanDigits(s, pos)
		if end == pos {
			return false
		}
		pos = end
	}

	return pos == len(s)
}
