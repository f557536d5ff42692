package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/AmbroTall/ask-the-web/internal/pipeline"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	region       string
	maxCitations int
	noCache      bool
	noValidate   bool
	noFooter     bool
	llmProvider  string
	llmModel     string
	httpProxy    string
	httpsProxy   string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question with validated citations",
	Long: `Ask searches the web for a question, scrapes the top sources,
generates a cited answer and validates every citation against the text
of the source it references.

Example:
  askweb ask "What are the benefits of meditation?"
  askweb ask "How does photosynthesis work?" --json report.json --md report.md
  askweb ask "Who invented the transistor?" --provider anthropic --model claude-3-5-haiku-20241022`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	// Output flags
	askCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	askCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	askCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Request flags
	askCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall request timeout")
	askCmd.Flags().StringVar(&userAgent, "ua", "AskWeb/0.1 (+https://github.com/AmbroTall/ask-the-web)", "HTTP User-Agent")
	askCmd.Flags().StringVar(&region, "region", "us", "search region code (gl parameter)")
	askCmd.Flags().IntVar(&maxCitations, "max-citations", 5, "cap on unique citations per answer")
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh search/scrape/answer)")
	askCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip citation quality validation")
	askCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	askCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	askCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n", question)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Cache: %v, Validation: %v\n\n", cfg.Cache.Enabled, cfg.Quality.Validate)
	}

	report, err := p.Ask(ctx, question)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoResults) {
			return fmt.Errorf("no search results found, try a different question")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if outJSON != "" {
		if err := p.Renderer().RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := p.Renderer().RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	p.Renderer().RenderSummary(report)
	return nil
}

// buildConfig merges defaults, config file values, environment keys and
// CLI flags into the pipeline configuration. The config file and the
// ASKWEB_* environment were loaded into viper by initConfig; their
// values override the defaults, and explicitly set flags override both.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if flags.Changed("region") {
		cfg.Search.Region = region
	}
	if flags.Changed("max-citations") {
		cfg.Quality.MaxCitations = maxCitations
	}
	if noValidate {
		cfg.Quality.Validate = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	if key := os.Getenv("SEARCH_API_KEY"); key != "" {
		cfg.Search.APIKey = key
	}
	if endpoint := os.Getenv("SEARCH_API_URL"); endpoint != "" {
		cfg.Search.Endpoint = endpoint
	}
	if cfg.Search.APIKey == "" {
		return nil, fmt.Errorf("search API key not set (SEARCH_API_KEY env var or search.api_key in config)")
	}
	if cfg.Search.Endpoint == "" {
		return nil, fmt.Errorf("search endpoint not set (SEARCH_API_URL env var or search.endpoint in config)")
	}

	if flags.Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("model") {
		cfg.LLM.Model = llmModel
	}
	switch cfg.LLM.Provider {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}
