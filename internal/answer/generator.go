// Package answer generates a cited answer from scraped sources via an
// LLM provider. The output contract downstream stages depend on:
// citation markers are [n] with n a 1-based index into the source list,
// and a literal "Sources:" line separates the prose body from the
// trailing "[n] Title - URL" enumeration.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmbroTall/ask-the-web/internal/citation"
	"github.com/AmbroTall/ask-the-web/internal/llm"
	"github.com/AmbroTall/ask-the-web/internal/model"
)

const systemInstruction = "You are a precise research assistant that answers questions strictly from provided sources with numbered citations."

// Generator produces a raw cited answer for a question.
type Generator struct {
	provider  llm.Provider
	model     string
	maxTokens int
}

// NewGenerator creates a generator backed by the given provider.
func NewGenerator(provider llm.Provider, model string, maxTokens int) *Generator {
	return &Generator{
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate asks the model for an answer and splits it into the prose
// body and the sources block. If the model omits the "Sources:"
// separator, the block is synthesized from the supplied sources in
// order. A provider failure here is fatal to the request: without an
// answer there is nothing to validate.
func (g *Generator) Generate(ctx context.Context, question string, sources []model.Source, corpus model.ScrapedCorpus) (string, string, error) {
	prompt, err := buildPrompt(question, sources, corpus)
	if err != nil {
		return "", "", err
	}

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		System:    systemInstruction,
		Prompt:    prompt,
		Model:     g.model,
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate answer: %w", err)
	}

	body, sourcesBlock := splitSourcesBlock(resp.Text, sources)
	return body, sourcesBlock, nil
}

// buildPrompt assembles the research-assistant prompt from the sources
// that scraped successfully. It errors when no source has any content.
func buildPrompt(question string, sources []model.Source, corpus model.ScrapedCorpus) (string, error) {
	var sourceTexts []string
	for _, s := range sources {
		content := corpus.Text(s.URL)
		if content == "" {
			continue
		}
		sourceTexts = append(sourceTexts, fmt.Sprintf("[%d] Title: %s\nURL: %s\nContent: %s", s.Index, s.Title, s.URL, content))
	}

	if len(sourceTexts) == 0 {
		return "", fmt.Errorf("no valid content could be scraped from any sources")
	}

	var b strings.Builder
	b.WriteString("You are a precise research assistant. Answer the question below using ONLY the information from the provided sources.\n\n")
	fmt.Fprintf(&b, "QUESTION: %s\n\n", question)
	fmt.Fprintf(&b, "SOURCES:\n%s\n\n", strings.Join(sourceTexts, "\n"))
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Answer in clear, concise paragraphs with a logical structure (e.g., definition, key features, uses, history).\n")
	b.WriteString("2. Use numbered citations like [1], [2], etc. after sentences or claims that require sourcing.\n")
	b.WriteString("3. Cite a source only once per paragraph for related claims; do not repeat the same citation multiple times for closely related points.\n")
	b.WriteString("4. Avoid redundancy by consolidating similar information (e.g., do not repeat the same feature or use in multiple sentences).\n")
	b.WriteString("5. Only make claims that are directly supported by the sources and relevant to the question.\n")
	b.WriteString("6. If the sources don't contain enough information to answer fully, acknowledge the limitations.\n")
	b.WriteString("7. Never make up information or use your general knowledge.\n")
	b.WriteString("8. Format citations as [n] where n is the source number.\n")
	b.WriteString("9. Always place citations OUTSIDE punctuation marks.\n\n")
	b.WriteString("Your response must follow this exact format:\n\n")
	b.WriteString("<answer with [n] citations after relevant sentences or claims>\n\n")
	b.WriteString("Sources:\n")
	b.WriteString("[1] Source Title - URL\n")
	b.WriteString("[2] Source Title - URL\n")
	b.WriteString("...etc.")

	return b.String(), nil
}

// splitSourcesBlock separates the answer body from its trailing sources
// block, synthesizing the block when the model omitted the separator.
func splitSourcesBlock(text string, sources []model.Source) (string, string) {
	if body, tail, found := strings.Cut(text, citation.SourcesHeader); found {
		return strings.TrimSpace(body), citation.SourcesHeader + "\n" + strings.TrimSpace(tail)
	}

	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		lines = append(lines, fmt.Sprintf("[%d] %s - %s", s.Index, s.Title, s.URL))
	}
	return strings.TrimSpace(text), citation.SourcesHeader + "\n" + strings.Join(lines, "\n")
}
