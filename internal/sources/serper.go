package sources

import (
	"context"
	"fmt"

	"github.com/jonathan/jobradar/internal/classify"
	"github.com/jonathan/jobradar/internal/ratelimit"
	"github.com/jonathan/jobradar/internal/search"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	// serperMaxQueries caps API calls per run
	serperMaxQueries = 8
	// serperResultsPerQuery is the number of organic results requested
	serperResultsPerQuery = 8
)

// querySuffix widens each generated query with location hints and an
// apply-now signal, matching how recruiters phrase listings.
const querySuffix = " (remote OR USA OR UK OR Canada OR San Francisco) apply now"

// Serper is the keyed search-engine adapter. It runs the profile's
// generated queries through a SERP provider and keeps only links the
// classifier judges to be genuine postings.
type Serper struct {
	provider search.Provider // nil when no credential is configured
	limiter  ratelimit.Limiter
}

// NewSerper creates the keyed-search adapter. Pass a nil provider when the
// API credential is absent; Fetch then reports ErrUnavailable.
func NewSerper(provider search.Provider, limiter ratelimit.Limiter) *Serper {
	if limiter == nil {
		limiter = ratelimit.None{}
	}
	return &Serper{provider: provider, limiter: limiter}
}

// Name implements Source.
func (s *Serper) Name() types.Source { return types.SourceSerper }

// Fetch implements Source. A failed or malformed query is skipped, never
// fatal to the remaining queries.
func (s *Serper) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("serper: %w", ErrUnavailable)
	}

	queries := profile.SearchQueries
	if len(queries) > serperMaxQueries {
		queries = queries[:serperMaxQueries]
	}

	var postings []types.RawPosting
	for _, query := range queries {
		if err := s.limiter.Wait(ctx); err != nil {
			return postings, err
		}

		results, err := s.provider.Search(ctx, query+querySuffix, serperResultsPerQuery)
		if err != nil {
			continue
		}

		for _, result := range results {
			if !classify.IsGenuinePosting(result.Link, result.Title) {
				continue
			}
			postings = append(postings, types.RawPosting{
				Source:      types.SourceSerper,
				Title:       result.Title,
				Company:     companyFromURL(result.Link),
				Location:    "See job page",
				Experience:  "See job page",
				URL:         result.Link,
				Description: result.Snippet,
			})
		}
	}

	return postings, nil
}
