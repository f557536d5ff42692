// Package search implements the web search collaborator: a Serper-style
// JSON API client that returns provider-ranked sources.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/AmbroTall/ask-the-web/internal/util"
)

// Client queries a search API for sources relevant to a question.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	region     string
	maxResults int
}

type searchRequest struct {
	Query  string `json:"q"`
	Region string `json:"gl,omitempty"`
}

type searchResponse struct {
	Organic []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic"`
}

// NewClient creates a search client. A missing API key or endpoint is a
// configuration error and fails immediately.
func NewClient(cfg model.SearchConfig, httpCfg model.HTTPConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key is required (set SEARCH_API_KEY)")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("search API endpoint is required (set SEARCH_API_URL)")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > 5 {
		maxResults = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		region:     cfg.Region,
		maxResults: maxResults,
	}, nil
}

// Search returns up to maxResults sources in provider-ranked order, with
// 1-based indices assigned positionally. Any failure yields an empty
// slice, never an error: zero results is a caller-visible terminal
// state, not a crash.
func (c *Client) Search(ctx context.Context, query string) []model.Source {
	payload, err := json.Marshal(searchRequest{Query: query, Region: c.region})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "Search error: unexpected status %d\n", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Fprintf(os.Stderr, "Search error: malformed response: %v\n", err)
		return nil
	}

	var sources []model.Source
	for _, r := range parsed.Organic {
		if len(sources) >= c.maxResults {
			break
		}
		if r.Title == "" || r.Link == "" {
			continue
		}
		sources = append(sources, model.Source{
			Index: len(sources) + 1,
			Title: r.Title,
			URL:   r.Link,
		})
	}

	return sources
}
