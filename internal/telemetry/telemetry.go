// Package telemetry tracks token and latency accounting per request.
package telemetry

import (
	"github.com/AmbroTall/ask-the-web/internal/model"
)

// CountTokens estimates the token count of a text. One token is roughly
// four characters for the model families this tool targets.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(text) / 4
}

// Track builds the telemetry record for one request. Latency is filled
// in by the caller, which owns the end-to-end clock.
func Track(question string, sources []model.Source, corpus model.ScrapedCorpus, answer string) model.Telemetry {
	sourceTokens := 0
	for _, s := range sources {
		sourceTokens += CountTokens(corpus.Text(s.URL))
	}

	inputTokens := CountTokens(question)
	outputTokens := CountTokens(answer)

	return model.Telemetry{
		InputTokens:    inputTokens,
		SourceTokens:   sourceTokens,
		OutputTokens:   outputTokens,
		TotalTokens:    inputTokens + sourceTokens + outputTokens,
		SourceCount:    len(sources),
		QuestionLength: len(question),
		AnswerLength:   len(answer),
	}
}
