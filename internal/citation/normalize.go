package citation

import "strings"

// SourcesHeader is the literal header line that precedes the sources
// listing in a generated answer.
const SourcesHeader = "Sources:"

// DefaultMaxCitations is the cap on unique citation markers per answer.
const DefaultMaxCitations = 5

// Normalizer rewrites a raw answer so that it carries at most
// maxCitations unique markers, each appearing exactly once, and its
// sources block lists exactly the markers that survive in the body.
type Normalizer struct {
	maxCitations int
}

// NewNormalizer creates a normalizer with the given citation cap.
func NewNormalizer(maxCitations int) *Normalizer {
	if maxCitations <= 0 {
		maxCitations = DefaultMaxCitations
	}
	return &Normalizer{maxCitations: maxCitations}
}

// Normalize returns the normalized answer body and sources block.
//
// Markers beyond the cap (by first-appearance order) are removed from
// the body entirely; of the retained markers only the first occurrence
// survives. Removed markers are never renumbered: remaining markers keep
// their original source indices.
func (n *Normalizer) Normalize(answer, sourcesBlock string) (string, string) {
	uniq := UniqueTokens(answer)
	lines := sourceLines(sourcesBlock)

	if len(uniq) == 0 {
		return answer, joinSources(lines)
	}

	if len(uniq) > n.maxCitations {
		for _, tok := range uniq[n.maxCitations:] {
			answer = strings.ReplaceAll(answer, tok, "")
		}
		if len(lines) > n.maxCitations {
			lines = lines[:n.maxCitations]
		}
	}

	answer = dropRepeatedMarkers(answer)

	used := make(map[string]bool)
	for _, tok := range UniqueTokens(answer) {
		used[tok] = true
	}
	var kept []string
	for _, line := range lines {
		if used[lineLabel(line)] {
			kept = append(kept, line)
		}
	}

	return answer, joinSources(kept)
}

// dropRepeatedMarkers keeps only the first occurrence of each marker
// token. The output is built in a single left-to-right pass over the
// original string: text between occurrences is copied verbatim and each
// marker token is either appended or skipped, so offsets of later
// markers are never disturbed by earlier deletions.
func dropRepeatedMarkers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seen := make(map[string]bool)
	pos := 0
	for _, m := range ScanMarkers(s) {
		tok := s[m.Start:m.End]
		b.WriteString(s[pos:m.Start])
		if !seen[tok] {
			seen[tok] = true
			b.WriteString(tok)
		}
		pos = m.End
	}
	b.WriteString(s[pos:])
	return b.String()
}

// sourceLines strips the header from a sources block and returns its
// non-empty trimmed lines in original order.
func sourceLines(block string) []string {
	body := strings.TrimSpace(block)
	body = strings.TrimPrefix(body, SourcesHeader)
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// lineLabel returns the citation label of a sources line: the leading
// [n] marker of the text before the first " - " separator. Lines in the
// usual "[n] Title - URL" form are keyed on the marker alone so that
// titles never defeat the match; a line whose label carries no leading
// marker is keyed on the whole trimmed label.
func lineLabel(line string) string {
	label, _, found := strings.Cut(line, " - ")
	if !found {
		label = line
	}
	label = strings.TrimSpace(label)
	if ms := ScanMarkers(label); len(ms) > 0 && ms[0].Start == 0 {
		return label[:ms[0].End]
	}
	return label
}

func joinSources(lines []string) string {
	return SourcesHeader + "\n" + strings.Join(lines, "\n")
}
