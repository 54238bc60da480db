package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voxagent/internal/search"
)

// Client is a SearXNG instance client. SearXNG is keyless, so it can serve
// as a provider when no Google credentials are available.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewClient creates a new SearXNG client. timeout is in seconds; zero means
// the 30s default.
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		timeout: t,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Search performs one search request against the instance's JSON endpoint.
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/search"

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	// Some instances block requests without a browser-looking User-Agent.
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &search.ProviderError{
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("SearXNG error (status %d)", res.StatusCode),
		}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	n := len(searchResp.Results)
	if req.MaxResults > 0 && n > req.MaxResults {
		n = req.MaxResults
	}

	results := make([]search.Result, 0, n)
	for _, r := range searchResp.Results[:n] {
		results = append(results, search.Result{
			Title:       r.Title,
			Link:        r.URL,
			Snippet:     r.Content,
			DisplayLink: displayLink(r.URL),
		})
	}

	return &search.Response{Results: results}, nil
}

// displayLink derives the host shown next to a result, matching what keyed
// providers return in their displayLink field.
func displayLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
