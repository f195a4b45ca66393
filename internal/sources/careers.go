package sources

import (
	"context"
	"fmt"

	"github.com/jonathan/jobradar/internal/classify"
	"github.com/jonathan/jobradar/internal/extract"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/ratelimit"
	"github.com/jonathan/jobradar/internal/search"
	"github.com/jonathan/jobradar/internal/types"
)

const (
	// careersMaxCompanies bounds external call volume per run
	careersMaxCompanies = 30
	// careersMaxPerCompany bounds postings emitted per company page
	careersMaxPerCompany = 3
	// careersLinkScanLimit over-scans candidate links so hub links rejected
	// by the classifier do not use up the per-company cap
	careersLinkScanLimit = careersMaxPerCompany * 4
)

// Careers is the company-career-page adapter: it resolves a likely career
// page per target company through the search provider, then extracts
// posting links from the page itself.
type Careers struct {
	client   *fetch.Client
	provider search.Provider // nil when no credential is configured
	limiter  ratelimit.Limiter
}

// NewCareers creates the career-page adapter. The provider is shared with
// the keyed-search adapter; pass nil when the credential is absent.
func NewCareers(client *fetch.Client, provider search.Provider, limiter ratelimit.Limiter) *Careers {
	if limiter == nil {
		limiter = ratelimit.None{}
	}
	return &Careers{client: client, provider: provider, limiter: limiter}
}

// Name implements Source.
func (c *Careers) Name() types.Source { return types.SourceCompanyCareers }

// Fetch implements Source. Each company is independent: a failed lookup or
// unreachable page skips that company only.
func (c *Careers) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("company careers: %w", ErrUnavailable)
	}

	companies := profile.TargetCompanies
	if len(companies) > careersMaxCompanies {
		companies = companies[:careersMaxCompanies]
	}

	keywords := roleKeywords(profile.TargetRole)
	var postings []types.RawPosting
	for _, company := range companies {
		if err := c.limiter.Wait(ctx); err != nil {
			return postings, err
		}

		results, err := c.provider.Search(ctx, company+" careers jobs page", 1)
		if err != nil || len(results) == 0 {
			continue
		}

		found, err := c.extractFromCareerPage(ctx, results[0].Link, company, keywords)
		if err != nil {
			continue
		}
		postings = append(postings, found...)
	}

	return postings, nil
}

// extractFromCareerPage visits one career page and pulls out links to
// individual openings.
func (c *Careers) extractFromCareerPage(ctx context.Context, pageURL, company string, keywords []string) ([]types.RawPosting, error) {
	doc, err := c.client.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	links, err := extract.PostingLinks(doc, pageURL, &extract.Options{
		MaxLinks:     careersLinkScanLimit,
		RoleKeywords: keywords,
	})
	if err != nil {
		return nil, err
	}

	postings := make([]types.RawPosting, 0, careersMaxPerCompany)
	for _, link := range links {
		if !classify.IsGenuinePosting(link.URL, link.Title) {
			continue
		}
		postings = append(postings, types.RawPosting{
			Source:      types.SourceCompanyCareers,
			Title:       link.Title,
			Company:     company,
			Location:    "See job page",
			Experience:  "See job page",
			URL:         link.URL,
			Description: "Job opening at " + company,
		})
		if len(postings) == careersMaxPerCompany {
			break
		}
	}
	return postings, nil
}
