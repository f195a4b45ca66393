package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/types"
)

// remoteokBaseURL is the production RemoteOK endpoint.
const remoteokBaseURL = "https://remoteok.com"

// remoteokMaxJobs caps postings emitted per call.
const remoteokMaxJobs = 15

// RemoteOK is a structured public-API adapter: the endpoint returns JSON
// already keyed to specific postings, so no classifier gate is applied.
type RemoteOK struct {
	client  *fetch.Client
	baseURL string
}

// NewRemoteOK creates the adapter. baseURL overrides the endpoint for
// tests; pass "" for production.
func NewRemoteOK(client *fetch.Client, baseURL string) *RemoteOK {
	if baseURL == "" {
		baseURL = remoteokBaseURL
	}
	return &RemoteOK{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name implements Source.
func (r *RemoteOK) Name() types.Source { return types.SourceRemoteOK }

// jobID tolerates the API serving ids as either strings or numbers.
type jobID string

func (id *jobID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = jobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = jobID(n.String())
	return nil
}

// remoteokJob mirrors the fields we consume from the RemoteOK API.
type remoteokJob struct {
	ID          jobID    `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	SalaryRange string   `json:"salary_range"`
}

// Fetch implements Source. The first array element is API metadata, not a
// job; malformed elements are skipped individually.
func (r *RemoteOK) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	term := strings.ToLower(profile.SearchTerm())
	endpoint := fmt.Sprintf("%s/api?tag=%s", r.baseURL, url.QueryEscape(term))

	var raw []json.RawMessage
	if err := r.client.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}

	var postings []types.RawPosting
	for _, item := range raw[1:] {
		var job remoteokJob
		if err := json.Unmarshal(item, &job); err != nil {
			continue
		}

		location := job.Location
		if location == "" {
			location = "Remote"
		}
		postings = append(postings, types.RawPosting{
			Source:      types.SourceRemoteOK,
			Title:       job.Position,
			Company:     job.Company,
			Location:    location,
			Experience:  "Not specified",
			Skills:      job.Tags,
			URL:         fmt.Sprintf("%s/l/%s", r.baseURL, string(job.ID)),
			Description: job.Description,
			Salary:      job.SalaryRange,
		})
		if len(postings) == remoteokMaxJobs {
			break
		}
	}
	return postings, nil
}
