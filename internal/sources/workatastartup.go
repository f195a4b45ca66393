package sources

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// workAtAStartupBaseURL is the production Work at a Startup endpoint.
const workAtAStartupBaseURL = "https://www.workatastartup.com"

// workAtAStartupMaxJobs caps postings emitted per call.
const workAtAStartupMaxJobs = 20

var ycJobHrefPattern = regexp.MustCompile(`/jobs/\d+`)

// WorkAtAStartup is the Y Combinator jobs adapter. The public API is the
// primary path; link scraping of the jobs page is the fallback when the
// API shape changes.
type WorkAtAStartup struct {
	client  *fetch.Client
	baseURL string
}

// NewWorkAtAStartup creates the adapter. baseURL overrides the endpoint
// for tests; pass "" for production.
func NewWorkAtAStartup(client *fetch.Client, baseURL string) *WorkAtAStartup {
	if baseURL == "" {
		baseURL = workAtAStartupBaseURL
	}
	return &WorkAtAStartup{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name implements Source.
func (w *WorkAtAStartup) Name() types.Source { return types.SourceWorkAtAStartup }

// ycJob mirrors the fields we consume from the jobs API.
type ycJob struct {
	ID       jobID    `json:"id"`
	Title    string   `json:"title"`
	Location string   `json:"location"`
	MinYears int      `json:"min_years_experience"`
	MaxYears int      `json:"max_years_experience"`
	Skills   []string `json:"skills"`
	Company  struct {
		Name string `json:"name"`
	} `json:"company"`
}

// Fetch implements Source.
func (w *WorkAtAStartup) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	term := strings.ToLower(profile.SearchTerm())

	postings, apiErr := w.fetchAPI(ctx, term)
	if apiErr == nil && len(postings) > 0 {
		return postings, nil
	}

	postings, htmlErr := w.scrapeJobLinks(ctx, term)
	if htmlErr != nil {
		if apiErr != nil {
			return nil, apiErr
		}
		return nil, htmlErr
	}
	return postings, nil
}

func (w *WorkAtAStartup) fetchAPI(ctx context.Context, term string) ([]types.RawPosting, error) {
	var jobs []ycJob
	if err := w.client.GetJSON(ctx, w.baseURL+"/api/v1/jobs", &jobs); err != nil {
		return nil, err
	}

	var postings []types.RawPosting
	for _, job := range jobs {
		if term != "" && !strings.Contains(strings.ToLower(job.Title), term) {
			continue
		}

		company := job.Company.Name
		if company == "" {
			company = "YC Startup"
		}
		location := job.Location
		if location == "" {
			location = "Varies"
		}
		skills := job.Skills
		if len(skills) > 5 {
			skills = skills[:5]
		}
		maxYears := job.MaxYears
		if maxYears == 0 {
			maxYears = 5
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceWorkAtAStartup,
			Title:      job.Title,
			Company:    company,
			Location:   location,
			Experience: fmt.Sprintf("%d-%d years", job.MinYears, maxYears),
			Skills:     skills,
			URL:        fmt.Sprintf("%s/jobs/%s", w.baseURL, string(job.ID)),
		})
		if len(postings) == workAtAStartupMaxJobs {
			break
		}
	}
	return postings, nil
}

// scrapeJobLinks pulls /jobs/<id> anchors off the listing page.
func (w *WorkAtAStartup) scrapeJobLinks(ctx context.Context, term string) ([]types.RawPosting, error) {
	doc, err := w.client.Document(ctx, w.baseURL+"/jobs")
	if err != nil {
		return nil, err
	}

	var postings []types.RawPosting
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if !ycJobHrefPattern.MatchString(href) || len(text) <= 10 {
			return true
		}
		if term != "" && !strings.Contains(strings.ToLower(text), term) {
			return true
		}

		jobURL := href
		if strings.HasPrefix(href, "/") {
			jobURL = w.baseURL + href
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceWorkAtAStartup,
			Title:      text,
			Company:    "YC Startup",
			Location:   "Varies",
			Experience: "Varies",
			Skills:     termSkills(term),
			URL:        jobURL,
		})
		return len(postings) < workAtAStartupMaxJobs
	})
	return postings, nil
}

// termSkills wraps a non-empty search term as the single known skill tag.
func termSkills(term string) []string {
	if term == "" {
		return nil
	}
	return []string{term}
}
