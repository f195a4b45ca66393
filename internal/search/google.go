package search

import (
	"context"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Google is a SERP provider backed by the Google Custom Search API. It is
// an alternative to Serper for deployments that already carry Google API
// credentials.
type Google struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogle creates a Google Custom Search provider for the given API key
// and search engine ID.
func NewGoogle(ctx context.Context, apiKey, cx string) (*Google, error) {
	if apiKey == "" || cx == "" {
		return nil, &ProviderError{Provider: "google", Message: "API key and search engine ID are required"}
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ProviderError{Provider: "google", Message: "failed to create customsearch service", Cause: err}
	}
	return &Google{svc: svc, cx: cx}, nil
}

// Search runs the query through the configured custom search engine.
func (g *Google) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	call := g.svc.Cse.List().Cx(g.cx).Q(query).Context(ctx)
	if limit > 0 {
		call = call.Num(int64(limit))
	}
	resp, err := call.Do()
	if err != nil {
		return nil, &ProviderError{Provider: "google", Message: "search request failed", Cause: err}
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}
