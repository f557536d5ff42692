package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateAtRune(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"cut inside two-byte rune", "aé", 2, "a"},
		{"cut after two-byte rune", "aé", 3, "aé"},
		{"cut inside three-byte rune", "a€b", 3, "a"},
		{"cut inside four-byte rune", "\U0001f600", 3, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateAtRune(tc.input, tc.n)
			if got != tc.expected {
				t.Errorf("TruncateAtRune(%q, %d) = %q, want %q", tc.input, tc.n, got, tc.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Result %q is not valid UTF-8", got)
			}
		})
	}
}

func TestTruncateAtRune_NeverSplitsRunes(t *testing.T) {
	s := strings.Repeat("é", 100)
	for n := 0; n <= len(s); n++ {
		if got := TruncateAtRune(s, n); !utf8.ValidString(got) {
			t.Fatalf("Cut at %d produced invalid UTF-8: %q", n, got)
		}
	}
}
