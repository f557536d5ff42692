package model

// Telemetry captures token and latency accounting for one request.
// Token counts are estimates (roughly 4 characters per token).
type Telemetry struct {
	InputTokens    int     `json:"input_tokens"`
	SourceTokens   int     `json:"source_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	LatencySeconds float64 `json:"latency"`
	SourceCount    int     `json:"source_count"`
	QuestionLength int     `json:"question_length"`
	AnswerLength   int     `json:"answer_length"`
}
