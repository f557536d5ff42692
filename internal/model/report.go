package model

import "time"

// CitationUnit is one sentence of a normalized answer together with the
// citation numbers it references, in order of appearance. Duplicate
// numbers within a sentence are kept.
type CitationUnit struct {
	Sentence  string `json:"sentence"`
	Citations []int  `json:"citations"`
}

// ValidationDetail is the verdict for a single (sentence, citation) pair.
type ValidationDetail struct {
	CitationNum int    `json:"citation_num"`
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason"`
}

// Validation outcomes for a sentence.
const (
	ValidationValid   = "Valid"
	ValidationInvalid = "Invalid"
)

// ValidationRecord holds the verdicts for one cited sentence. Validation
// is "Valid" iff at least one detail is valid.
type ValidationRecord struct {
	Sentence   string             `json:"sentence"`
	Citations  []int              `json:"citations"`
	Validation string             `json:"validation"`
	Details    []ValidationDetail `json:"details"`
}

// QualityReport is the output of citation validation. When the
// verification call itself fails, ValidationError carries the message,
// Citations is empty and OverallScore is "N/A"; callers must check
// ValidationError rather than expect an error return.
type QualityReport struct {
	OverallScore    string             `json:"overall_score"`
	Citations       []ValidationRecord `json:"citations"`
	ValidationError string             `json:"validation_error,omitempty"`
}

// Report is the complete result of answering one question.
type Report struct {
	Question     string    `json:"question"`
	Sources      []Source  `json:"sources"`
	Answer       string    `json:"answer"`
	SourcesBlock string    `json:"sources_block"`
	GeneratedAt  time.Time `json:"generated_at"`

	// Quality holds the detailed validation report; nil when validation
	// was disabled for the request.
	Quality *QualityReport `json:"quality,omitempty"`

	// QualityScore is the user-facing citation-level score, computed over
	// the unique markers of the normalized answer.
	QualityScore string `json:"quality_score,omitempty"`

	Telemetry Telemetry `json:"telemetry"`
}
