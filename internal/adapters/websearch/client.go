package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"fundline/internal/tools"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// Ensure Client implements the searcher contract
var _ tools.WebSearcher = (*Client)(nil)

// Client calls a hosted web-search API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a search client.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "search API URL is required")
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Get().With("component", "websearch"),
	}, nil
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one query and returns up to limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]tools.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	body, err := json.Marshal(searchRequest{Query: query, MaxResults: limit})
	if err != nil {
		return nil, errors.Wrap(err, "encode search request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create search request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.ErrExternal, "search request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read search response")
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warnf("Search API returned %d: %s", resp.StatusCode, string(respBody))
		return nil, errors.Wrapf(errors.ErrExternal, "search API error (%d)", resp.StatusCode)
	}

	var wire searchResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}

	results := make([]tools.SearchResult, 0, len(wire.Results))
	for _, r := range wire.Results {
		results = append(results, tools.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}
	return results, nil
}
