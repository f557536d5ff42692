package citation

import (
	"strings"

	"github.com/AmbroTall/ask-the-web/internal/model"
)

// Extract splits an answer into sentences and pairs each sentence with
// the citation numbers it references, in order of appearance. Duplicate
// numbers within one sentence are kept; extraction never deduplicates.
func Extract(answer string) []model.CitationUnit {
	sentences := SplitSentences(answer)
	units := make([]model.CitationUnit, 0, len(sentences))
	for _, sentence := range sentences {
		var nums []int
		for _, m := range ScanMarkers(sentence) {
			nums = append(nums, m.Number)
		}
		units = append(units, model.CitationUnit{Sentence: sentence, Citations: nums})
	}
	return units
}

// SplitSentences splits text at sentence boundaries: immediately after
// '.', '!' or '?' when followed by whitespace. The punctuation stays
// with the preceding sentence, a trailing fragment becomes its own
// sentence, and whitespace-only sentences are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		if isSentenceEnd(text[i]) && isSpace(text[i+1]) {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
