package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// hnBaseURL is the production Hacker News endpoint.
const hnBaseURL = "https://news.ycombinator.com"

// hnMaxJobs caps postings emitted per call.
const hnMaxJobs = 20

// HNJobs is an HTML-listing adapter over the Hacker News jobs page.
// The page takes no search parameters; every current posting is emitted.
type HNJobs struct {
	client  *fetch.Client
	baseURL string
}

// NewHNJobs creates the adapter. baseURL overrides the endpoint for
// tests; pass "" for production.
func NewHNJobs(client *fetch.Client, baseURL string) *HNJobs {
	if baseURL == "" {
		baseURL = hnBaseURL
	}
	return &HNJobs{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name implements Source.
func (h *HNJobs) Name() types.Source { return types.SourceHNJobs }

// Fetch implements Source. Postings link either to an external site or to
// an item?id= discussion page, which is resolved against the HN host.
func (h *HNJobs) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	doc, err := h.client.Document(ctx, h.baseURL+"/jobs")
	if err != nil {
		return nil, err
	}

	var postings []types.RawPosting
	doc.Find("tr.athing").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("span.titleline a").First()
		href, ok := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if !ok || title == "" {
			return true
		}

		switch {
		case strings.HasPrefix(href, "item?id="):
			href = h.baseURL + "/" + href
		case !strings.HasPrefix(href, "http"):
			return true
		}

		postings = append(postings, types.RawPosting{
			Source:     types.SourceHNJobs,
			Title:      title,
			Company:    "Various (HN)",
			Location:   "See posting",
			Experience: "Varies",
			URL:        href,
		})
		return len(postings) < hnMaxJobs
	})

	return postings, nil
}
