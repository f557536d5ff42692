// Package score aggregates citation verdicts into the user-facing
// quality rating.
package score

import (
	"fmt"

	"github.com/AmbroTall/ask-the-web/internal/citation"
	"github.com/AmbroTall/ask-the-web/internal/model"
)

// Scorer computes the citation-level quality score: the share of the
// normalized answer's unique citation markers that received at least
// one valid verdict. This, not the validator's internal score, is the
// rating surfaced to end users.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score rates the answer using the normalized body as ground truth for
// which citations actually matter. A marker counts as valid on its
// first valid detail; later details for the same marker never double
// count.
func (s *Scorer) Score(normalizedAnswer string, report model.QualityReport) string {
	actual := make(map[int]bool)
	for _, num := range citation.UniqueNumbers(normalizedAnswer) {
		actual[num] = true
	}

	totalCitations := len(actual)
	if totalCitations == 0 {
		return "No citations to evaluate"
	}

	validCitations := 0
	seen := make(map[int]bool)
	for _, record := range report.Citations {
		for _, detail := range record.Details {
			if actual[detail.CitationNum] && detail.Valid && !seen[detail.CitationNum] {
				validCitations++
				seen[detail.CitationNum] = true
			}
		}
	}

	pct := float64(validCitations) / float64(totalCitations) * 100
	return fmt.Sprintf("%s (%d/%d valid citations, %.1f%%)", Band(pct), validCitations, totalCitations, pct)
}

// Band maps a percentage to its quality label. Thresholds are shared by
// the structural and citation-level scores.
func Band(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent"
	case pct >= 75:
		return "Good"
	case pct >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}
