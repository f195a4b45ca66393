package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/normalize"
	"github.com/jonathan/jobradar/internal/ratelimit"
	"github.com/jonathan/jobradar/internal/sources"
	"github.com/jonathan/jobradar/internal/types"
)

// stubSource is a canned source for orchestration tests.
type stubSource struct {
	name     types.Source
	postings []types.RawPosting
	err      error
	panics   bool
}

func (s *stubSource) Name() types.Source { return s.name }

func (s *stubSource) Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error) {
	if s.panics {
		panic("listing payload shape changed")
	}
	return s.postings, s.err
}

func testAggregator(srcs ...sources.Source) *Aggregator {
	return &Aggregator{sources: srcs, budget: 5 * time.Second}
}

func validProfile() *types.SearchProfile {
	return &types.SearchProfile{
		TargetRole:    "Backend Engineer",
		PrimarySkills: []string{"backend"},
	}
}

func TestDiscover_MergesDedupesAndReportsOutcomes(t *testing.T) {
	api := &stubSource{name: types.SourceRemoteOK, postings: []types.RawPosting{
		{Source: types.SourceRemoteOK, Title: "Backend Engineer", Company: "Acme", URL: "https://remoteok.com/l/1"},
		{Source: types.SourceRemoteOK, Title: "Platform Engineer", Company: "Globex", URL: "https://remoteok.com/l/2"},
		{Source: types.SourceRemoteOK, Title: "Data Engineer", Company: "Initech", URL: "https://remoteok.com/l/3"},
	}}
	html := &stubSource{name: types.SourceHNJobs, postings: []types.RawPosting{
		// Same title/company as the first API posting: deduplicated away.
		{Source: types.SourceHNJobs, Title: "backend engineer", Company: "ACME", URL: "https://news.ycombinator.com/item?id=1"},
		{Source: types.SourceHNJobs, Title: "SRE", Company: "Hooli", URL: "https://news.ycombinator.com/item?id=2"},
	}}
	careers := &stubSource{name: types.SourceCompanyCareers,
		err: fmt.Errorf("company careers: %w", sources.ErrUnavailable)}

	agg := testAggregator(api, html, careers)
	result, err := agg.Discover(context.Background(), validProfile())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Len(t, result.Postings, 4)
	assert.NotEmpty(t, result.RunID)

	// First occurrence wins: the surviving Acme posting came from the API.
	assert.Equal(t, types.SourceRemoteOK, result.Postings[0].Source)
	assert.Equal(t, "https://remoteok.com/l/1", result.Postings[0].ApplyURL)

	careersOutcome := result.Outcomes[types.SourceCompanyCareers]
	assert.True(t, careersOutcome.Unavailable)
	assert.Zero(t, careersOutcome.Count)
	assert.NotEmpty(t, careersOutcome.Err)

	apiOutcome := result.Outcomes[types.SourceRemoteOK]
	assert.False(t, apiOutcome.Unavailable)
	assert.Equal(t, 3, apiOutcome.Count)
}

func TestDiscover_NormalizesBeforeDedup(t *testing.T) {
	src := &stubSource{name: types.SourceHNJobs, postings: []types.RawPosting{
		{Source: types.SourceHNJobs, URL: "https://a.example/1"},
	}}

	result, err := testAggregator(src).Discover(context.Background(), validProfile())
	require.NoError(t, err)
	require.Len(t, result.Postings, 1)

	got := result.Postings[0]
	assert.Equal(t, normalize.FallbackTitle, got.Title)
	assert.Equal(t, normalize.FallbackCompany, got.Company)
	assert.Equal(t, normalize.FallbackField, got.Location)
}

func TestDiscover_AllSourcesFailingStillYieldsResult(t *testing.T) {
	a := &stubSource{name: types.SourceRemoteOK, err: errors.New("connection refused")}
	b := &stubSource{name: types.SourceHNJobs, err: errors.New("HTTP status 503")}

	result, err := testAggregator(a, b).Discover(context.Background(), validProfile())
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Empty(t, result.Postings)
	assert.NotEmpty(t, result.RunID)
	for _, outcome := range result.Outcomes {
		assert.NotEmpty(t, outcome.Err)
		assert.False(t, outcome.Unavailable)
	}
}

func TestDiscover_PanickingSourceIsContained(t *testing.T) {
	bad := &stubSource{name: types.SourceWellfound, panics: true}
	good := &stubSource{name: types.SourceRemoteOK, postings: []types.RawPosting{
		{Source: types.SourceRemoteOK, Title: "Backend Engineer", Company: "Acme"},
	}}

	result, err := testAggregator(bad, good).Discover(context.Background(), validProfile())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Contains(t, result.Outcomes[types.SourceWellfound].Err, "panicked")
	assert.Equal(t, 1, result.Outcomes[types.SourceRemoteOK].Count)
}

func TestDiscover_RejectsInvalidProfile(t *testing.T) {
	agg := testAggregator()

	_, err := agg.Discover(context.Background(), nil)
	assert.Error(t, err)

	_, err = agg.Discover(context.Background(), &types.SearchProfile{})
	assert.Error(t, err)
}

func TestDiscover_RecordsElapsed(t *testing.T) {
	result, err := testAggregator().Discover(context.Background(), validProfile())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}

func TestBoundProfile_CapsWithoutMutating(t *testing.T) {
	profile := validProfile()
	for i := 0; i < maxSearchQueries+5; i++ {
		profile.SearchQueries = append(profile.SearchQueries, "q")
	}
	for i := 0; i < maxTargetCompanies+5; i++ {
		profile.TargetCompanies = append(profile.TargetCompanies, "c")
	}

	bounded := boundProfile(profile)
	assert.Len(t, bounded.SearchQueries, maxSearchQueries)
	assert.Len(t, bounded.TargetCompanies, maxTargetCompanies)
	assert.Len(t, profile.SearchQueries, maxSearchQueries+5)
}

func TestNew_RegistersAllSources(t *testing.T) {
	agg, err := New(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer agg.Close()

	assert.Len(t, agg.sources, 8)
	names := make(map[types.Source]bool)
	for _, src := range agg.sources {
		names[src.Name()] = true
	}
	assert.True(t, names[types.SourceSerper])
	assert.True(t, names[types.SourceCompanyCareers])
	assert.True(t, names[types.SourceRemoteOK])
	assert.True(t, names[types.SourceWellfound])
}

func TestSearchPacer_SelectsPolicy(t *testing.T) {
	assert.IsType(t, &ratelimit.Interval{}, searchPacer(&config.Config{}))
	assert.IsType(t, &ratelimit.TokenBucket{}, searchPacer(&config.Config{SearchBurst: 5}))
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), &config.Config{SearchRate: -1})
	assert.Error(t, err)
}
