package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"voxagent/internal/conf"
	"voxagent/internal/search"
)

// Error taxonomy of the gateway. Every failure is terminal for its attempt;
// nothing is retried.
var (
	// ErrMissingQuery: the query is absent or blank after trimming.
	ErrMissingQuery = kerrors.New(400, "VALIDATION", "Missing query")
	// ErrNotConfigured: provider credentials were absent at process start.
	ErrNotConfigured = kerrors.New(500, "CONFIGURATION", "Search service is not configured. Set GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID.")
	// ErrSearchFailed: the provider call could not complete at all.
	ErrSearchFailed = kerrors.New(500, "TRANSPORT", "Search request failed")
)

const defaultMaxResults = 10

// SearchResult is one normalized hit as it appears on the wire.
type SearchResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink,omitempty"`
}

// SearchReply is the gateway's success response.
type SearchReply struct {
	Results []SearchResult `json:"results"`
	Summary string         `json:"summary"`
}

// SearchUseCase brokers one query to the provider and derives the narration.
// It holds no mutable state, so requests may be served concurrently.
type SearchUseCase struct {
	searcher   search.Searcher // nil when credentials are missing
	maxResults int
	limiter    *rate.Limiter
	log        *log.Helper
}

// NewSearchUseCase wires the use case. searcher may be nil; every search then
// fails with ErrNotConfigured.
func NewSearchUseCase(searcher search.Searcher, c *conf.Search, cc *conf.Concurrency, logger log.Logger) *SearchUseCase {
	maxResults := defaultMaxResults
	if c != nil && c.MaxResults > 0 {
		maxResults = int(c.MaxResults)
	}

	// Pace outbound provider calls. Wait-only: the limiter delays a request,
	// it never rejects one.
	limit := rate.Inf
	burst := 0
	if cc != nil && cc.Rpm > 0 {
		limit = rate.Limit(float64(cc.Rpm) / 60.0)
		burst = int(cc.Qps)
		if burst < 1 {
			burst = 1
		}
	}

	return &SearchUseCase{
		searcher:   searcher,
		maxResults: maxResults,
		limiter:    rate.NewLimiter(limit, burst),
		log:        log.NewHelper(logger),
	}
}

// Configured reports whether provider credentials were present at startup.
func (uc *SearchUseCase) Configured() bool {
	return uc.searcher != nil
}

// Search validates the query, performs one uncached provider call and maps
// the response. Validation precedes the configuration check; both precede
// any network traffic.
func (uc *SearchUseCase) Search(ctx context.Context, query string) (*SearchReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}
	if uc.searcher == nil {
		return nil, ErrNotConfigured
	}

	if err := uc.limiter.Wait(ctx); err != nil {
		uc.log.Errorf("limiter wait aborted: %v", err)
		return nil, ErrSearchFailed
	}

	resp, err := uc.searcher.Search(ctx, &search.Request{
		Query:      query,
		MaxResults: uc.maxResults,
	})
	if err != nil {
		var pe *search.ProviderError
		if errors.As(err, &pe) {
			return nil, kerrors.New(pe.StatusCode, "PROVIDER", pe.Message)
		}
		uc.log.Errorf("search request failed: %v", err)
		return nil, ErrSearchFailed
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, SearchResult{
			Title:       r.Title,
			Link:        r.Link,
			Snippet:     r.Snippet,
			DisplayLink: r.DisplayLink,
		})
	}

	return &SearchReply{
		Results: results,
		Summary: Narrate(query, results),
	}, nil
}

// Narrate derives the spoken summary. Pure function of query and results:
// zero results yield a fixed "could not find" sentence, otherwise the first
// min(3, n) results are read out as "{title}. {snippet}" fragments.
func Narrate(query string, results []SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("I could not find any results for %s.", query)
	}

	n := min(3, len(results))
	fragments := make([]string, 0, n)
	for _, r := range results[:n] {
		fragments = append(fragments, fmt.Sprintf("%s. %s", r.Title, r.Snippet))
	}

	return fmt.Sprintf("Here is what I found for %s. %s", query, strings.Join(fragments, " "))
}
