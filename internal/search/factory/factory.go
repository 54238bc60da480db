package factory

import (
	"fmt"

	"voxagent/internal/conf"
	"voxagent/internal/search"
	"voxagent/internal/search/google"
	"voxagent/internal/search/searxng"
)

// NewSearcher builds the configured provider client. A missing credential is
// an error here, but not fatal to the gateway: the caller keeps serving and
// answers every search with the configuration failure instead.
func NewSearcher(c *conf.Search) (search.Searcher, error) {
	if c == nil {
		return nil, fmt.Errorf("search provider not configured")
	}

	provider := c.Provider
	if provider == "" {
		provider = "google"
	}

	switch provider {
	case "google":
		if c.Google == nil || c.Google.ApiKey == "" || c.Google.EngineId == "" {
			return nil, fmt.Errorf("google api key or engine id is missing")
		}
		return google.NewClient(c.Google.ApiKey, c.Google.EngineId), nil

	case "searxng":
		if c.Searxng == nil || c.Searxng.BaseUrl == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(c.Searxng.BaseUrl, int(c.Searxng.Timeout)), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
