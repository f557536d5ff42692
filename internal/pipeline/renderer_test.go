package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AmbroTall/ask-the-web/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Question:     "What is Go?",
		Sources:      pipelineSources,
		Answer:       "Go is a programming language [1].",
		SourcesBlock: "Sources:\n[1] First - https://example.com/1\n[2] Second - https://example.com/2",
		GeneratedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Quality: &model.QualityReport{
			OverallScore: "Excellent (1/1 valid citations, 100.0%)",
			Citations: []model.ValidationRecord{
				{
					Sentence:   "Go is a programming language [1].",
					Citations:  []int{1},
					Validation: model.ValidationValid,
					Details:    []model.ValidationDetail{{CitationNum: 1, Valid: true, Reason: "Supported"}},
				},
			},
		},
		QualityScore: "Excellent (1/1 valid citations, 100.0%)",
		Telemetry: model.Telemetry{
			InputTokens:  3,
			SourceTokens: 100,
			OutputTokens: 8,
			TotalTokens:  111,
			SourceCount:  2,
		},
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(true)

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var parsed model.Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if parsed.Question != "What is Go?" {
		t.Errorf("Unexpected question: %s", parsed.Question)
	}
	if parsed.Quality == nil || parsed.Quality.OverallScore == "" {
		t.Error("Quality report not round-tripped")
	}
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(true)

	if err := r.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Ask the Web Report",
		"**Question:** What is Go?",
		"## Answer",
		"Go is a programming language [1].",
		"- [1] First - https://example.com/1",
		"## Citation Quality",
		"Excellent (1/1 valid citations, 100.0%)",
		"## Telemetry",
		"| Total tokens | 111 |",
		"Generated by askweb",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestRenderer_RenderMarkdown_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(false)

	if err := r.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by askweb") {
		t.Error("Footer rendered despite being disabled")
	}
}

func TestRenderer_RenderMarkdown_SkipsQualityWhenDisabled(t *testing.T) {
	report := sampleReport()
	report.Quality = nil
	report.QualityScore = ""

	path := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(true).RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "## Citation Quality") {
		t.Error("Quality section rendered without a score")
	}
}
