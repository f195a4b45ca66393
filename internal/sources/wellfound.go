package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// wellfoundBaseURL is the production Wellfound endpoint.
const wellfoundBaseURL = "https://wellfound.com"

// wellfoundMaxJobs caps postings emitted per call.
const wellfoundMaxJobs = 15

var wellfoundJobHrefPattern = regexp.MustCompile(`/company/[^/]+/jobs/|/jobs/\d+`)

// Renderer renders a URL in a headless browser and returns the HTML. It is
// optional; when nil, only the plain HTTP body is scraped.
type Renderer func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Wellfound is an HTML-listing adapter over the Wellfound jobs page. The
// site is client-rendered, so the embedded __NEXT_DATA__ payload is the
// primary extraction path and anchor scanning the fallback.
type Wellfound struct {
	client  *fetch.Client
	baseURL string
	render  Renderer
}

// NewWellfound creates the adapter. baseURL overrides the endpoint for
// tests; render may be nil to disable browser fallback.
func NewWellfound(client *fetch.Client, baseURL string, render Renderer) *Wellfound {
	if baseURL == "" {
		baseURL = wellfoundBaseURL
	}
	return &Wellfound{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), render: render}
}

// Name implements Source.
func (w *Wellfound) Name() types.Source { return types.SourceWellfound }

// nextData covers the slice of the Next.js payload holding job listings.
// The key varies across page versions, so all known spellings are probed.
type nextData struct {
	Props struct {
		PageProps struct {
			Jobs        []wellfoundJob `json:"jobs"`
			JobListings []wellfoundJob `json:"jobListings"`
			Results     []wellfoundJob `json:"results"`
		} `json:"pageProps"`
	} `json:"props"`
}

type wellfoundJob struct {
	ID          jobID    `json:"id"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	LocationStr string   `json:"locationStr"`
	Location    string   `json:"location"`
	MinYears    int      `json:"minYearsExperience"`
	MaxYears    int      `json:"maxYearsExperience"`
	Tags        []string `json:"tags"`
	CompanyName string   `json:"companyName"`
	Company     struct {
		Name string `json:"name"`
	} `json:"company"`
}

// Fetch implements Source.
func (w *Wellfound) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	term := strings.ToLower(profile.SearchTerm())
	slug := strings.ReplaceAll(term, " ", "-")
	pageURL := fmt.Sprintf("%s/jobs?role=%s&remote=true", w.baseURL, slug)

	body, err := w.pageBody(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := fetch.ParseDocument(body)
	if err != nil {
		return nil, err
	}

	if postings := w.fromNextData(doc); len(postings) > 0 {
		return postings, nil
	}
	return w.fromAnchors(doc, term), nil
}

// pageBody fetches the listing page, falling back to a browser render when
// the plain HTTP body is an empty client-side shell.
func (w *Wellfound) pageBody(ctx context.Context, pageURL string) (string, error) {
	res, err := w.client.Get(ctx, pageURL)
	if err != nil && res == nil {
		return "", err
	}

	body := res.Body
	if w.render != nil && fetch.ShouldUseBrowser(body) {
		rendered, renderErr := w.render(ctx, pageURL, 30*time.Second)
		if renderErr == nil {
			return rendered, nil
		}
	}
	if err != nil && strings.TrimSpace(body) == "" {
		return "", err
	}
	return body, nil
}

// fromNextData decodes the embedded Next.js JSON payload.
func (w *Wellfound) fromNextData(doc *goquery.Document) []types.RawPosting {
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil
	}

	var data nextData
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return nil
	}

	jobs := data.Props.PageProps.Jobs
	if len(jobs) == 0 {
		jobs = data.Props.PageProps.JobListings
	}
	if len(jobs) == 0 {
		jobs = data.Props.PageProps.Results
	}

	var postings []types.RawPosting
	for _, job := range jobs {
		title := job.Title
		if title == "" {
			title = job.Name
		}
		if title == "" {
			continue
		}

		company := job.Company.Name
		if company == "" {
			company = job.CompanyName
		}
		if company == "" {
			company = "Startup"
		}
		location := job.LocationStr
		if location == "" {
			location = job.Location
		}
		if location == "" {
			location = "Remote"
		}
		maxYears := job.MaxYears
		if maxYears == 0 {
			maxYears = 5
		}
		tags := job.Tags
		if len(tags) > 5 {
			tags = tags[:5]
		}

		jobURL := w.baseURL + "/jobs"
		if job.ID != "" {
			jobURL = fmt.Sprintf("%s/jobs/%s", w.baseURL, string(job.ID))
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceWellfound,
			Title:      title,
			Company:    company,
			Location:   location,
			Experience: fmt.Sprintf("%d-%d years", job.MinYears, maxYears),
			Skills:     tags,
			URL:        jobURL,
		})
		if len(postings) == wellfoundMaxJobs {
			break
		}
	}
	return postings
}

// fromAnchors scans job-link anchors when no structured payload is found.
func (w *Wellfound) fromAnchors(doc *goquery.Document, term string) []types.RawPosting {
	var postings []types.RawPosting
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if !wellfoundJobHrefPattern.MatchString(href) || len(text) <= 5 {
			return true
		}

		jobURL := href
		if strings.HasPrefix(href, "/") {
			jobURL = w.baseURL + href
		}
		postings = append(postings, types.RawPosting{
			Source:     types.SourceWellfound,
			Title:      text,
			Company:    "Startup",
			Location:   "Remote/Global",
			Experience: "Varies",
			Skills:     termSkills(term),
			URL:        jobURL,
		})
		return len(postings) < wellfoundMaxJobs
	})
	return postings
}
