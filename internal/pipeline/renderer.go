package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AmbroTall/ask-the-web/internal/citation"
	"github.com/AmbroTall/ask-the-web/internal/model"
)

// Renderer writes reports as JSON, Markdown, and a stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as pretty-printed JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Ask the Web Report\n\n")
	fmt.Fprintf(&b, "**Question:** %s\n\n", report.Question)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Answer\n\n")
	b.WriteString(report.Answer)
	b.WriteString("\n\n")

	b.WriteString("## Sources\n\n")
	for _, line := range strings.Split(report.SourcesBlock, "\n")[1:] {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")

	if report.QualityScore != "" {
		b.WriteString("## Citation Quality\n\n")
		fmt.Fprintf(&b, "**Score:** %s\n\n", report.QualityScore)

		if report.Quality != nil {
			if report.Quality.ValidationError != "" {
				fmt.Fprintf(&b, "Validation degraded: %s\n\n", report.Quality.ValidationError)
			}
			for _, record := range report.Quality.Citations {
				fmt.Fprintf(&b, "- **%s** — %s\n", record.Validation, record.Sentence)
				for _, d := range record.Details {
					fmt.Fprintf(&b, "  - %s: %s\n", citation.Token(d.CitationNum), d.Reason)
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Telemetry\n\n")
	t := report.Telemetry
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Input tokens | %d |\n", t.InputTokens)
	fmt.Fprintf(&b, "| Source tokens | %d |\n", t.SourceTokens)
	fmt.Fprintf(&b, "| Output tokens | %d |\n", t.OutputTokens)
	fmt.Fprintf(&b, "| Total tokens | %d |\n", t.TotalTokens)
	fmt.Fprintf(&b, "| Latency | %.2fs |\n", t.LatencySeconds)
	fmt.Fprintf(&b, "| Sources | %d |\n", t.SourceCount)

	if r.includeFooter {
		b.WriteString("\n---\n")
		b.WriteString("Generated by askweb — answers are only as good as their sources.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}

// RenderSummary prints the answer, sources and quality score to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println(report.Answer)
	fmt.Println()
	fmt.Println(report.SourcesBlock)

	if report.QualityScore != "" {
		fmt.Println()
		fmt.Printf("Citation quality: %s\n", report.QualityScore)
		if report.Quality != nil && report.Quality.ValidationError != "" {
			fmt.Printf("Validation degraded: %s\n", report.Quality.ValidationError)
		}
	}

	fmt.Printf("\n%d sources, ~%d tokens, %.1fs\n",
		report.Telemetry.SourceCount, report.Telemetry.TotalTokens, report.Telemetry.LatencySeconds)
}
