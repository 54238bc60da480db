package search

import (
	"context"
	"fmt"
)

// Searcher is the common interface over external search providers.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is a provider-agnostic search request.
type Request struct {
	Query      string
	MaxResults int
}

// Response is a provider-agnostic search response. Result ordering mirrors
// the provider's relevance ordering.
type Response struct {
	Results []Result
}

// Result is a single search hit, mapped verbatim from the provider.
type Result struct {
	Title       string
	Link        string
	Snippet     string
	DisplayLink string
}

// ProviderError is returned when the provider answered with a non-success
// status. StatusCode is the provider's own HTTP status and is forwarded to
// the caller; Message is the provider's error message when one could be
// parsed, else a provider-specific generic message.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}
