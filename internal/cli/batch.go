package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AmbroTall/ask-the-web/internal/pipeline"
	"github.com/AmbroTall/ask-the-web/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer multiple questions from a file in parallel",
	Long: `Batch answers multiple questions concurrently:
- Read questions from input file (one per line, # comments skipped)
- Answer questions in parallel with configurable worker count
- Generate an individual JSON report for each question

Example:
  askweb batch questions.txt
  askweb batch questions.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./askweb-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for batch processing")

	// Shared flags from ask
	batchCmd.Flags().StringVar(&userAgent, "ua", "AskWeb/0.1 (+https://github.com/AmbroTall/ask-the-web)", "HTTP User-Agent")
	batchCmd.Flags().StringVar(&region, "region", "us", "search region code (gl parameter)")
	batchCmd.Flags().IntVar(&maxCitations, "max-citations", 5, "cap on unique citations per answer")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache")
	batchCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip citation quality validation")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL")
	batchCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	succeeded := 0
	for i, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Question, result.Error)
			continue
		}

		path := filepath.Join(outputDir, fmt.Sprintf("answer-%03d.json", i+1))
		if err := p.Renderer().RenderJSON(result.Report, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Question, err)
			continue
		}

		succeeded++
		score := result.Report.QualityScore
		if score == "" {
			score = "not validated"
		}
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%s)\n", truncateQuestion(result.Question), path, score)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d/%d answered\n", succeeded, len(results))
	return nil
}

func truncateQuestion(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > 60 {
		return q[:57] + "..."
	}
	return q
}
