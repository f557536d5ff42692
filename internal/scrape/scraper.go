// Package scrape implements the page scraper collaborator: polite,
// retrying extraction of boilerplate-stripped text from web pages.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/AmbroTall/ask-the-web/internal/util"
)

// scrapeSleepFunc is the sleep function used between retries (injectable for tests)
var scrapeSleepFunc = time.Sleep

// Scraper fetches pages and extracts their main text content. Every
// failure mode degrades to an empty string; Scrape never errors.
type Scraper struct {
	httpClient *http.Client
	userAgent  string
	maxChars   int
	maxRetries int
	robots     *robotsChecker
	limiter    *domainLimiter
}

// NewScraper creates a scraper from configuration.
func NewScraper(cfg model.ScrapeConfig, httpCfg model.HTTPConfig) *Scraper {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = 8000
	}

	var robots *robotsChecker
	if cfg.RespectRobots {
		robots = newRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout)
	}

	return &Scraper{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent:  httpCfg.UserAgent,
		maxChars:   maxChars,
		maxRetries: maxRetries,
		robots:     robots,
		limiter:    newDomainLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// Scrape retrieves the main text of a page, truncated to maxChars with a
// trailing ellipsis marker. It returns "" on invalid URLs, non-HTML
// content, robots.txt denial, or any network/HTTP error after
// exhausting retries with exponential backoff.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		fmt.Fprintf(os.Stderr, "Invalid URL format: %s\n", rawURL)
		return ""
	}

	if s.robots != nil && !s.robots.canFetch(ctx, parsed) {
		fmt.Fprintf(os.Stderr, "Blocked by robots.txt: %s\n", rawURL)
		return ""
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if err := s.limiter.wait(ctx, parsed.Host); err != nil {
			return ""
		}

		text, retryable := s.fetchOnce(ctx, rawURL)
		if text != "" {
			return text
		}
		if !retryable || attempt == s.maxRetries-1 {
			return ""
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		scrapeSleepFunc(backoff)
	}

	return ""
}

// fetchOnce performs a single fetch attempt. It returns the extracted
// text and whether a failure is worth retrying.
func (s *Scraper) fetchOnce(ctx context.Context, rawURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", isRetryableNetworkError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == 429 || (resp.StatusCode >= 500 && resp.StatusCode < 600) {
		return "", true
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "HTTP error %d for %s\n", resp.StatusCode, rawURL)
		return "", false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml+xml") {
		fmt.Fprintf(os.Stderr, "Skipping non-HTML content: %s for %s\n", contentType, rawURL)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", isRetryableNetworkError(err.Error())
	}

	text := ExtractText(string(body))
	if text == "" {
		return "", false
	}

	if len(text) > s.maxChars {
		text = util.TruncateAtRune(text, s.maxChars) + "..."
	}
	return text, false
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "eof")
}
