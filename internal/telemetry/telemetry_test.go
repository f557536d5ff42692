package telemetry

import (
	"strings"
	"testing"

	"github.com/AmbroTall/ask-the-web/internal/model"
)

func TestCountTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{strings.Repeat("x", 100), 25},
	}
	for _, tt := range tests {
		if got := CountTokens(tt.text); got != tt.want {
			t.Errorf("CountTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestTrack(t *testing.T) {
	sources := []model.Source{
		{Index: 1, Title: "A", URL: "https://example.com/a"},
		{Index: 2, Title: "B", URL: "https://example.com/b"},
	}
	corpus := model.ScrapedCorpus{
		"https://example.com/a": strings.Repeat("x", 400),
		"https://example.com/b": strings.Repeat("y", 200),
	}
	question := strings.Repeat("q", 40)
	answer := strings.Repeat("a", 80)

	tel := Track(question, sources, corpus, answer)

	if tel.InputTokens != 10 {
		t.Errorf("InputTokens = %d, want 10", tel.InputTokens)
	}
	if tel.SourceTokens != 150 {
		t.Errorf("SourceTokens = %d, want 150", tel.SourceTokens)
	}
	if tel.OutputTokens != 20 {
		t.Errorf("OutputTokens = %d, want 20", tel.OutputTokens)
	}
	if tel.TotalTokens != 180 {
		t.Errorf("TotalTokens = %d, want 180", tel.TotalTokens)
	}
	if tel.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", tel.SourceCount)
	}
	if tel.QuestionLength != 40 || tel.AnswerLength != 80 {
		t.Errorf("Lengths = %d/%d, want 40/80", tel.QuestionLength, tel.AnswerLength)
	}
}

func TestTrack_UnscrapedSourceContributesNothing(t *testing.T) {
	sources := []model.Source{
		{Index: 1, URL: "https://example.com/a"},
		{Index: 2, URL: "https://example.com/missing"},
	}
	corpus := model.ScrapedCorpus{
		"https://example.com/a": strings.Repeat("x", 40),
	}

	tel := Track("q", sources, corpus, "")

	if tel.SourceTokens != 10 {
		t.Errorf("SourceTokens = %d, want 10", tel.SourceTokens)
	}
	if tel.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", tel.SourceCount)
	}
}
