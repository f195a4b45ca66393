package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// remoteCoBaseURL is the production Remote.co endpoint.
const remoteCoBaseURL = "https://remote.co"

// remoteCoMaxJobs caps postings emitted per call.
const remoteCoMaxJobs = 15

// RemoteCo is an HTML-listing adapter over the Remote.co developer jobs
// page. The page is not search-parameterized, so postings are filtered by
// whether the search term appears in the title.
type RemoteCo struct {
	client  *fetch.Client
	baseURL string
}

// NewRemoteCo creates the adapter. baseURL overrides the endpoint for
// tests; pass "" for production.
func NewRemoteCo(client *fetch.Client, baseURL string) *RemoteCo {
	if baseURL == "" {
		baseURL = remoteCoBaseURL
	}
	return &RemoteCo{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name implements Source.
func (r *RemoteCo) Name() types.Source { return types.SourceRemoteCo }

// Fetch implements Source.
func (r *RemoteCo) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	term := strings.ToLower(profile.SearchTerm())

	doc, err := r.client.Document(ctx, r.baseURL+"/remote-jobs/developer/")
	if err != nil {
		return nil, err
	}

	var postings []types.RawPosting
	doc.Find("div.job_listing").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		titleLink := s.Find("a.font_weight_700").First()
		href, ok := titleLink.Attr("href")
		title := strings.TrimSpace(titleLink.Text())
		if !ok || title == "" {
			return true
		}
		if term != "" && !strings.Contains(strings.ToLower(title), term) {
			return true
		}

		company := strings.TrimSpace(s.Find("p.m-0").First().Text())
		if company == "" {
			company = "Company"
		}
		jobURL := href
		if strings.HasPrefix(href, "/") {
			jobURL = r.baseURL + href
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceRemoteCo,
			Title:      title,
			Company:    company,
			Location:   "Remote (Global)",
			Experience: "Varies",
			Skills:     termSkills(term),
			URL:        jobURL,
		})
		return len(postings) < remoteCoMaxJobs
	})

	return postings, nil
}
