package search

import (
	"context"

	"github.com/jonathan/jobradar/internal/fetch"
)

// DefaultSerperEndpoint is the Serper.dev search endpoint.
const DefaultSerperEndpoint = "https://google.serper.dev/search"

// Serper is a keyed SERP provider backed by the Serper.dev API.
type Serper struct {
	client   *fetch.Client
	apiKey   string
	endpoint string
}

// NewSerper creates a Serper provider. The endpoint is overridable for
// tests; pass "" for the production endpoint.
func NewSerper(client *fetch.Client, apiKey, endpoint string) *Serper {
	if endpoint == "" {
		endpoint = DefaultSerperEndpoint
	}
	return &Serper{client: client, apiKey: apiKey, endpoint: endpoint}
}

// serperRequest is the Serper API request body.
type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

// serperResponse covers the slice of the Serper response we consume.
type serperResponse struct {
	Organic []Result `json:"organic"`
}

// Search posts the query to the Serper endpoint and returns up to limit
// organic results.
func (s *Serper) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if s.apiKey == "" {
		return nil, &ProviderError{Provider: "serper", Message: "API key is required"}
	}

	var resp serperResponse
	err := s.client.PostJSON(ctx, s.endpoint,
		serperRequest{Q: query, Num: limit},
		map[string]string{"X-API-KEY": s.apiKey},
		&resp,
	)
	if err != nil {
		return nil, &ProviderError{Provider: "serper", Message: "search request failed", Cause: err}
	}

	results := resp.Organic
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
