// Package textutil provides whitespace-aware string helpers.
//
// Whitespace here is the full Unicode-aware set rather than the ASCII-only
// "code point <= U+0020" rule of Trim. It matches unicode.IsSpace except
// that the non-breaking spaces U+00A0, U+2007 and U+202F and the control
// character U+0085 (NEL) are not whitespace, and the information separators
// U+001C..U+001F are. Under this
// rule U+2000 (EN QUAD) is whitespace, so Strip removes it while Trim keeps
// it.
package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// IsWhitespace reports whether r is whitespace under the package rule.
func IsWhitespace(r rune) bool {
	switch r {
	case '\u0085', '\u00A0', '\u2007', '\u202F':
		return false
	case '\u001C', '\u001D', '\u001E', '\u001F':
		return true
	}
	return unicode.IsSpace(r)
}

// IsEmpty reports whether s has zero length.
func IsEmpty(s string) bool {
	return len(s) == 0
}

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !IsWhitespace(r) }) < 0
}

// Strip removes leading and trailing whitespace.
func Strip(s string) string {
	return strings.TrimFunc(s, IsWhitespace)
}

// StripLeading removes leading whitespace.
func StripLeading(s string) string {
	return strings.TrimLeftFunc(s, IsWhitespace)
}

// StripTrailing removes trailing whitespace.
func StripTrailing(s string) string {
	return strings.TrimRightFunc(s, IsWhitespace)
}

// Trim removes leading and trailing code points less than or equal to
// U+0020 (space and the ASCII control characters). Unicode spaces such as
// U+2000 are kept.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// Lines splits s into lines. LF, CR and CRLF all terminate a line and are
// not included in the result. A terminator at the very end does not start
// an extra empty line, and the empty string has no lines.
func Lines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Repeat returns count copies of s concatenated. A count of zero yields
// the empty string; a negative count is an error.
func Repeat(s string, count int) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("repeat count must not be negative: %d", count)
	}
	return strings.Repeat(s, count), nil
}
