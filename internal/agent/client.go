package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SearchResult mirrors one normalized gateway hit.
type SearchResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

// SearchResponse is the gateway's success payload.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Summary string         `json:"summary"`
}

// GatewayError carries the gateway's error message and HTTP status.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error (status %d): %s", e.StatusCode, e.Message)
}

// Client calls the query gateway.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a gateway client for baseURL, eg. http://localhost:8080.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

// Search issues one search request. A non-success response with a parseable
// body yields a GatewayError carrying the gateway's own message.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	u := c.baseURL + "/api/search?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, &GatewayError{StatusCode: res.StatusCode, Message: errResp.Error}
		}
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: "Search request failed"}
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	return &resp, nil
}
