package util

import "unicode/utf8"

// TruncateAtRune shortens s to at most n bytes, backing off to the
// nearest rune boundary so the cut never leaves a partial UTF-8
// sequence at the end.
func TruncateAtRune(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
