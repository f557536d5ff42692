package model

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	HTTP        HTTPConfig        `yaml:"http"`
	Scrape      ScrapeConfig      `yaml:"scrape"`
	LLM         LLMConfig         `yaml:"llm"`
	Quality     QualityConfig     `yaml:"quality"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// SearchConfig configures the web search collaborator.
type SearchConfig struct {
	APIKey     string `yaml:"api_key,omitempty"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	Region     string `yaml:"region"`
	MaxResults int    `yaml:"max_results"`
}

// HTTPConfig configures outbound HTTP behavior shared by collaborators.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty"`
	NoProxy    string        `yaml:"no_proxy,omitempty"`
}

// ScrapeConfig configures the page scraper.
type ScrapeConfig struct {
	MaxChars          int     `yaml:"max_chars"`
	MaxRetries        int     `yaml:"max_retries"`
	RespectRobots     bool    `yaml:"respect_robots"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LLMConfig configures the model provider used for answer generation and
// citation verification.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// QualityConfig configures citation normalization and validation.
type QualityConfig struct {
	MaxCitations       int  `yaml:"max_citations"`
	Validate           bool `yaml:"validate"`
	SourceExcerptChars int  `yaml:"source_excerpt_chars"`
}

// CacheConfig configures the content-addressed request cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds the worker counts.
type ConcurrencyConfig struct {
	ScrapeWorkers int `yaml:"scrape_workers"`
	BatchWorkers  int `yaml:"batch_workers"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Region:     "us",
			MaxResults: 5,
		},
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "AskWeb/0.1 (+https://github.com/AmbroTall/ask-the-web)",
		},
		Scrape: ScrapeConfig{
			MaxChars:          8000,
			MaxRetries:        3,
			RespectRobots:     true,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 1500,
		},
		Quality: QualityConfig{
			MaxCitations:       5,
			Validate:           true,
			SourceExcerptChars: 2000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ScrapeWorkers: 5,
			BatchWorkers:  4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
