package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// weWorkRemotelyBaseURL is the production We Work Remotely endpoint.
const weWorkRemotelyBaseURL = "https://weworkremotely.com"

// weWorkRemotelyMaxJobs caps postings emitted per call.
const weWorkRemotelyMaxJobs = 15

// WeWorkRemotely is an HTML-listing adapter over the We Work Remotely
// search page. Listings repeat as li.feature rows.
type WeWorkRemotely struct {
	client  *fetch.Client
	baseURL string
}

// NewWeWorkRemotely creates the adapter. baseURL overrides the endpoint
// for tests; pass "" for production.
func NewWeWorkRemotely(client *fetch.Client, baseURL string) *WeWorkRemotely {
	if baseURL == "" {
		baseURL = weWorkRemotelyBaseURL
	}
	return &WeWorkRemotely{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name implements Source.
func (w *WeWorkRemotely) Name() types.Source { return types.SourceWeWorkRemotely }

// Fetch implements Source. Rows missing a title or link are skipped;
// a missing company falls back to "Company".
func (w *WeWorkRemotely) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	term := strings.ToLower(profile.SearchTerm())
	searchURL := w.baseURL + "/remote-jobs/search?term=" + strings.ReplaceAll(term, " ", "+")

	doc, err := w.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var postings []types.RawPosting
	doc.Find("li.feature").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("span.title").First().Text())
		company := strings.TrimSpace(s.Find("span.company").First().Text())
		href, ok := s.Find("a[href]").First().Attr("href")
		if title == "" || !ok {
			return true
		}
		if company == "" {
			company = "Company"
		}

		jobURL := href
		if strings.HasPrefix(href, "/") {
			jobURL = w.baseURL + href
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceWeWorkRemotely,
			Title:      title,
			Company:    company,
			Location:   "Remote (Global)",
			Experience: "Varies",
			Skills:     termSkills(term),
			URL:        jobURL,
		})
		return len(postings) < weWorkRemotelyMaxJobs
	})

	return postings, nil
}
