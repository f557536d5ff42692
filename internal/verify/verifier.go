// Package verify cross-checks each cited sentence of an answer against
// the text of the source it cites, using a secondary model call.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmbroTall/ask-the-web/internal/citation"
	"github.com/AmbroTall/ask-the-web/internal/llm"
	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/AmbroTall/ask-the-web/internal/score"
	"github.com/AmbroTall/ask-the-web/internal/util"
)

// Fixed reasons for verdicts that never reach the model.
const (
	reasonOutOfRange = "Citation number out of range"
	reasonNotFound   = "Validation not found"
)

// DefaultSourceExcerptChars caps how much of each source's scraped text
// is included per citation in the verification prompt.
const DefaultSourceExcerptChars = 2000

// Verifier validates an answer's citations against the scraped corpus.
type Verifier struct {
	provider     llm.Provider
	model        string
	excerptChars int
}

// NewVerifier creates a verifier backed by the given provider.
func NewVerifier(provider llm.Provider, model string, excerptChars int) *Verifier {
	if excerptChars <= 0 {
		excerptChars = DefaultSourceExcerptChars
	}
	return &Verifier{
		provider:     provider,
		model:        model,
		excerptChars: excerptChars,
	}
}

// Validate asks the model, in one batched call, whether each cited
// sentence is supported by its sources, and aggregates the verdicts
// into a quality report. A failed call yields a degraded report with
// ValidationError set; Validate never returns an error itself.
func (v *Verifier) Validate(ctx context.Context, answer string, sources []model.Source, corpus model.ScrapedCorpus) model.QualityReport {
	units := citation.Extract(answer)

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: v.buildPrompt(units, sources, corpus),
		Model:  v.model,
	})
	if err != nil {
		return model.QualityReport{
			OverallScore:    "N/A",
			Citations:       []model.ValidationRecord{},
			ValidationError: fmt.Sprintf("citation verification failed: %v", err),
		}
	}

	lines := strings.Split(resp.Text, "\n")
	report := model.QualityReport{Citations: []model.ValidationRecord{}}

	for idx, unit := range units {
		// Sentences without citations stay in the request for stable
		// indexing but contribute nothing to the report.
		if len(unit.Citations) == 0 {
			continue
		}

		details := make([]model.ValidationDetail, 0, len(unit.Citations))
		for _, num := range unit.Citations {
			if num < 1 || num > len(sources) {
				details = append(details, model.ValidationDetail{
					CitationNum: num,
					Valid:       false,
					Reason:      reasonOutOfRange,
				})
				continue
			}
			details = append(details, parseVerdict(lines, idx+1, num))
		}

		validation := model.ValidationInvalid
		for _, d := range details {
			if d.Valid {
				validation = model.ValidationValid
				break
			}
		}

		report.Citations = append(report.Citations, model.ValidationRecord{
			Sentence:   unit.Sentence,
			Citations:  unit.Citations,
			Validation: validation,
			Details:    details,
		})
	}

	report.OverallScore = structuralScore(report.Citations)
	return report
}

// buildPrompt lists every sentence with the excerpts of the sources it
// cites, then the verdict-format instructions. Out-of-range citation
// numbers contribute no source excerpt.
func (v *Verifier) buildPrompt(units []model.CitationUnit, sources []model.Source, corpus model.ScrapedCorpus) string {
	var b strings.Builder
	b.WriteString("Task: Verify if the cited information is supported by the sources.\n")

	for idx, unit := range units {
		fmt.Fprintf(&b, "\nSentence %d: %s\n", idx+1, unit.Sentence)

		for _, num := range unit.Citations {
			if num < 1 || num > len(sources) {
				continue
			}
			text := corpus.Text(sources[num-1].URL)
			if len(text) > v.excerptChars {
				text = util.TruncateAtRune(text, v.excerptChars)
			}
			fmt.Fprintf(&b, "Source [%d] content: %s\n", num, text)
		}
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString("1. For each sentence, analyze if the factual claims are directly supported by the cited sources.\n")
	b.WriteString("2. For each citation, answer YES or NO, followed by a brief explanation.\n")
	b.WriteString("3. Say YES only if the source directly supports ALL claims in the sentence.\n")
	b.WriteString("4. Say NO if any claim is unsupported, exaggerated, or contradicted.\n")
	b.WriteString("5. Format your response as:\n")
	b.WriteString("Sentence 1, Citation [n]: YES/NO - Explanation\n")
	b.WriteString("Sentence 1, Citation [m]: YES/NO - Explanation\n")
	b.WriteString("Sentence 2, Citation [p]: YES/NO - Explanation\n")

	return b.String()
}

// parseVerdict scans the response lines for the verdict matching one
// (sentence, citation) pair. First match wins; a missing line defaults
// to an invalid verdict.
func parseVerdict(lines []string, sentenceNum, citationNum int) model.ValidationDetail {
	prefix := fmt.Sprintf("Sentence %d, Citation [%d]: ", sentenceNum, citationNum)

	for _, line := range lines {
		rest, found := strings.CutPrefix(strings.TrimSpace(line), prefix)
		if !found {
			continue
		}

		verdict, explanation, ok := parseVerdictTail(rest)
		if !ok {
			continue
		}

		return model.ValidationDetail{
			CitationNum: citationNum,
			Valid:       verdict == "YES",
			Reason:      explanation,
		}
	}

	return model.ValidationDetail{
		CitationNum: citationNum,
		Valid:       false,
		Reason:      reasonNotFound,
	}
}

// parseVerdictTail parses the "YES|NO - <explanation>" part of a
// verdict line.
func parseVerdictTail(rest string) (string, string, bool) {
	for _, verdict := range []string{"YES", "NO"} {
		tail, found := strings.CutPrefix(rest, verdict+" - ")
		if found {
			return verdict, tail, true
		}
	}
	return "", "", false
}

// structuralScore bands the share of valid sentences over all sentences
// that carried at least one citation.
func structuralScore(records []model.ValidationRecord) string {
	if len(records) == 0 {
		return "N/A (No citations found)"
	}

	valid := 0
	for _, r := range records {
		if r.Validation == model.ValidationValid {
			valid++
		}
	}

	pct := float64(valid) / float64(len(records)) * 100
	return fmt.Sprintf("%s (%d/%d valid citations, %.1f%%)", score.Band(pct), valid, len(records), pct)
}
