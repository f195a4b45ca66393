// Package search abstracts the web-search providers used to find job
// postings and resolve company career pages.
package search

import (
	"context"
	"fmt"
)

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}

// Provider executes web searches. Implementations may use a commercial
// SERP API or a search-engine SDK; limit caps the number of results.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// ProviderError represents a failure talking to a search provider.
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search provider %s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("search provider %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
