package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"voxagent/internal/search"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// genericErrMessage is used when the provider's error body cannot be parsed
// into a message.
const genericErrMessage = "Google Search API error"

// Client is a Google Custom Search JSON API client.
type Client struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

// NewClient creates a new Custom Search client. Both the API key and the
// search engine id are required by the API.
func NewClient(apiKey, engineID string) *Client {
	return &Client{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultBaseURL,
		client:   http.DefaultClient,
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// searchResponse is the subset of the Custom Search response we consume.
// Items may be absent entirely when there are no hits.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

// errorResponse covers both error shapes the API is known to produce:
// a bare string and a structured object with a message field.
type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// Search performs one uncached search request. The call is not retried.
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", req.Query)
	if req.MaxResults > 0 {
		q.Set("num", strconv.Itoa(req.MaxResults))
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, &search.ProviderError{
			StatusCode: res.StatusCode,
			Message:    parseErrMessage(body),
		}
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	results := make([]search.Result, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		results = append(results, search.Result{
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
		})
	}

	return &search.Response{Results: results}, nil
}

// parseErrMessage extracts the provider's error message from a non-success
// body. The API sends either {"error": "..."} or {"error": {"message": "..."}};
// anything else falls back to the generic message.
func parseErrMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Error) == 0 {
		return genericErrMessage
	}

	var msg string
	if err := json.Unmarshal(errResp.Error, &msg); err == nil && msg != "" {
		return msg
	}

	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(errResp.Error, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	return genericErrMessage
}
