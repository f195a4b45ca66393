package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobradar/internal/types"
)

func TestPrintSearchProfile(t *testing.T) {
	var out strings.Builder
	p := NewPrinter(&out)

	p.PrintSearchProfile(&types.SearchProfile{
		TargetRole:      "Backend Engineer",
		PrimarySkills:   []string{"go", "postgres", "grpc", "aws", "docker", "terraform"},
		SearchQueries:   []string{"a", "b"},
		TargetCompanies: []string{"Acme"},
	})

	got := out.String()
	assert.Contains(t, got, "SEARCH PROFILE")
	assert.Contains(t, got, "Backend Engineer")
	assert.Contains(t, got, "(+1 more)")
	assert.Contains(t, got, "Queries:   2")
}

func TestPrintResult(t *testing.T) {
	var out strings.Builder
	p := NewPrinter(&out)

	p.PrintResult(&types.AggregationResult{
		RunID: "run-1",
		Postings: []types.NormalizedPosting{
			{Title: "Backend Engineer", Company: "Acme", Location: "Remote"},
		},
		Outcomes: map[types.Source]types.SourceOutcome{
			types.SourceRemoteOK:       {Source: types.SourceRemoteOK, Count: 1},
			types.SourceCompanyCareers: {Source: types.SourceCompanyCareers, Unavailable: true, Err: "required credential absent"},
			types.SourceHNJobs:         {Source: types.SourceHNJobs, Err: "HTTP status 503"},
		},
		Total:   1,
		Elapsed: 1234 * time.Millisecond,
	})

	got := out.String()
	assert.Contains(t, got, "1 postings")
	assert.Contains(t, got, "unavailable")
	assert.Contains(t, got, "error: HTTP status 503")
	assert.Contains(t, got, "Total: 1 unique postings")
	assert.Contains(t, got, "TOP POSTINGS")
	assert.Contains(t, got, "Backend Engineer")
}

func TestPrintNilInputsAreNoOps(t *testing.T) {
	var out strings.Builder
	p := NewPrinter(&out)

	p.PrintSearchProfile(nil)
	p.PrintResult(nil)
	assert.Empty(t, out.String())
}
