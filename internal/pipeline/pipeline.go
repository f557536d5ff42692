// Package pipeline orchestrates the ask flow: search, scrape, generate,
// normalize, validate, score. Each stage produces a new value; no stage
// mutates a predecessor's output.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AmbroTall/ask-the-web/internal/answer"
	"github.com/AmbroTall/ask-the-web/internal/cache"
	"github.com/AmbroTall/ask-the-web/internal/citation"
	"github.com/AmbroTall/ask-the-web/internal/llm"
	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/AmbroTall/ask-the-web/internal/scrape"
	"github.com/AmbroTall/ask-the-web/internal/score"
	"github.com/AmbroTall/ask-the-web/internal/search"
	"github.com/AmbroTall/ask-the-web/internal/telemetry"
	"github.com/AmbroTall/ask-the-web/internal/verify"
)

// ErrNoResults is returned when the search collaborator finds nothing.
// It is terminal and user-visible for the whole request.
var ErrNoResults = errors.New("no search results found")

// Searcher finds sources for a query. Failures yield an empty slice.
type Searcher interface {
	Search(ctx context.Context, query string) []model.Source
}

// Scraper extracts a page's text. Failures yield an empty string.
type Scraper interface {
	Scrape(ctx context.Context, url string) string
}

// Generator produces the raw cited answer and its sources block.
type Generator interface {
	Generate(ctx context.Context, question string, sources []model.Source, corpus model.ScrapedCorpus) (string, string, error)
}

// Validator cross-checks citations and never errors; degraded results
// carry a ValidationError.
type Validator interface {
	Validate(ctx context.Context, answer string, sources []model.Source, corpus model.ScrapedCorpus) model.QualityReport
}

// Pipeline answers questions with validated citations.
type Pipeline struct {
	searcher   Searcher
	scraper    Scraper
	generator  Generator
	validator  Validator
	normalizer *citation.Normalizer
	scorer     *score.Scorer
	renderer   *Renderer
	cache      cache.Cache
	config     *model.Config
}

// New creates a pipeline with the given configuration. Missing
// credentials are configuration errors and fail here, before any
// pipeline stage runs.
func New(cfg *model.Config) (*Pipeline, error) {
	searcher, err := search.NewClient(cfg.Search, cfg.HTTP)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, err
	}

	var requestCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}
		requestCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		searcher:   searcher,
		scraper:    scrape.NewScraper(cfg.Scrape, cfg.HTTP),
		generator:  answer.NewGenerator(provider, cfg.LLM.Model, cfg.LLM.MaxTokens),
		validator:  verify.NewVerifier(provider, cfg.LLM.Model, cfg.Quality.SourceExcerptChars),
		normalizer: citation.NewNormalizer(cfg.Quality.MaxCitations),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		cache:      requestCache,
		config:     cfg,
	}, nil
}

// Ask answers a single question end to end.
func (p *Pipeline) Ask(ctx context.Context, question string) (*model.Report, error) {
	start := time.Now()

	// 1. Search
	sources := p.cachedSearch(ctx, question)
	if len(sources) == 0 {
		return nil, ErrNoResults
	}

	// 2. Scrape all sources concurrently
	corpus := p.scrapeAll(ctx, sources)

	// 3. Generate the raw cited answer (fatal on failure)
	rawAnswer, rawSources, err := p.cachedGenerate(ctx, question, sources, corpus)
	if err != nil {
		return nil, err
	}

	// 4. Normalize citations
	normAnswer, sourcesBlock := p.normalizer.Normalize(rawAnswer, rawSources)

	// 5. Validate and score
	var quality *model.QualityReport
	var qualityScore string
	if p.config.Quality.Validate {
		report := p.validator.Validate(ctx, normAnswer, sources, corpus)
		quality = &report
		qualityScore = p.scorer.Score(normAnswer, report)
	}

	// 6. Telemetry
	tel := telemetry.Track(question, sources, corpus, normAnswer)
	tel.LatencySeconds = time.Since(start).Seconds()

	return &model.Report{
		Question:     question,
		Sources:      sources,
		Answer:       normAnswer,
		SourcesBlock: sourcesBlock,
		GeneratedAt:  time.Now().UTC(),
		Quality:      quality,
		QualityScore: qualityScore,
		Telemetry:    tel,
	}, nil
}

// ClearCache drops every cached stage result.
func (p *Pipeline) ClearCache() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Clear()
}

// Renderer returns the pipeline's renderer.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// scrapeAll fetches every source's text, bounded by the scrape worker
// count. Each fetch writes its own slot, so no locking is needed beyond
// the semaphore.
func (p *Pipeline) scrapeAll(ctx context.Context, sources []model.Source) model.ScrapedCorpus {
	workers := p.config.Concurrency.ScrapeWorkers
	if workers <= 0 {
		workers = 5
	}

	texts := make([]string, len(sources))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			texts[idx] = p.cachedScrape(ctx, url)
		}(i, src.URL)
	}

	wg.Wait()

	corpus := make(model.ScrapedCorpus, len(sources))
	for i, src := range sources {
		corpus[src.URL] = texts[i]
	}
	return corpus
}

func (p *Pipeline) cachedSearch(ctx context.Context, query string) []model.Source {
	key := cache.Key("search", query)
	if data, found := p.cacheGet(key); found {
		var sources []model.Source
		if err := json.Unmarshal(data, &sources); err == nil {
			return sources
		}
	}

	sources := p.searcher.Search(ctx, query)
	if len(sources) > 0 {
		if data, err := json.Marshal(sources); err == nil {
			p.cacheSet(key, data)
		}
	}
	return sources
}

func (p *Pipeline) cachedScrape(ctx context.Context, url string) string {
	key := cache.Key("scrape", url)
	if data, found := p.cacheGet(key); found {
		return string(data)
	}

	text := p.scraper.Scrape(ctx, url)
	// Failures are not cached so a later request can retry the fetch.
	if text != "" {
		p.cacheSet(key, []byte(text))
	}
	return text
}

type generatedAnswer struct {
	Answer       string `json:"answer"`
	SourcesBlock string `json:"sources_block"`
}

func (p *Pipeline) cachedGenerate(ctx context.Context, question string, sources []model.Source, corpus model.ScrapedCorpus) (string, string, error) {
	params := []string{question}
	for _, s := range sources {
		params = append(params, s.URL)
	}
	key := cache.Key("answer", params...)

	if data, found := p.cacheGet(key); found {
		var cached generatedAnswer
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Answer, cached.SourcesBlock, nil
		}
	}

	body, sourcesBlock, err := p.generator.Generate(ctx, question, sources, corpus)
	if err != nil {
		return "", "", err
	}

	if data, err := json.Marshal(generatedAnswer{Answer: body, SourcesBlock: sourcesBlock}); err == nil {
		p.cacheSet(key, data)
	}
	return body, sourcesBlock, nil
}

func (p *Pipeline) cacheGet(key string) ([]byte, bool) {
	if p.cache == nil {
		return nil, false
	}
	return p.cache.Get(key)
}

func (p *Pipeline) cacheSet(key string, data []byte) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(key, data, 0); err != nil && p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".askweb-cache"
	}
	return filepath.Join(home, ".askweb", "cache")
}
