// Package citation implements the citation processing core: marker
// scanning, answer normalization and sentence/citation extraction.
package citation

import "strconv"

// Marker is one citation marker occurrence: a bracketed integer token
// [n] located at byte offsets [Start, End) of the scanned string.
type Marker struct {
	Number int
	Start  int
	End    int
}

// ScanMarkers returns every citation marker occurrence in s, in document
// order, repeats included. Bracketed content that is not all digits is
// not a marker and is skipped.
func ScanMarkers(s string) []Marker {
	var markers []Marker
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			i++
			continue
		}
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == i+1 || j >= len(s) || s[j] != ']' {
			i++
			continue
		}
		num, err := strconv.Atoi(s[i+1 : j])
		if err != nil {
			i++
			continue
		}
		markers = append(markers, Marker{Number: num, Start: i, End: j + 1})
		i = j + 1
	}
	return markers
}

// UniqueTokens returns the marker tokens of s in first-appearance order,
// deduplicated.
func UniqueTokens(s string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, m := range ScanMarkers(s) {
		tok := s[m.Start:m.End]
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// UniqueNumbers returns the citation numbers of s in first-appearance
// order, deduplicated.
func UniqueNumbers(s string) []int {
	var nums []int
	seen := make(map[int]bool)
	for _, m := range ScanMarkers(s) {
		if !seen[m.Number] {
			seen[m.Number] = true
			nums = append(nums, m.Number)
		}
	}
	return nums
}

// Token renders the marker token for a citation number.
func Token(n int) string {
	return "[" + strconv.Itoa(n) + "]"
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
