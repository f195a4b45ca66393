package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/search"
	"github.com/jonathan/jobradar/internal/types"
)

func TestCareers_NilProviderUnavailable(t *testing.T) {
	src := NewCareers(testClient(t), nil, nil)
	postings, err := src.Fetch(context.Background(), testProfile())

	assert.Nil(t, postings)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCareers_ExtractsPostingsFromCareerPage(t *testing.T) {
	page := htmlServer(t, `<html><body>
		<a href="/job/1-backend">Senior Backend Engineer</a>
		<a href="/job/2-platform">Platform Engineer (Remote)</a>
		<a href="/about">About our company</a>
	</body></html>`)

	provider := &fakeProvider{results: map[string][]search.Result{
		"Acme careers jobs page": {{Title: "Acme Careers", Link: page.URL + "/careers"}},
	}}

	profile := testProfile()
	profile.TargetCompanies = []string{"Acme"}

	src := NewCareers(testClient(t), provider, nil)
	postings, err := src.Fetch(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, postings, 2)

	got := postings[0]
	assert.Equal(t, types.SourceCompanyCareers, got.Source)
	assert.Equal(t, "Senior Backend Engineer", got.Title)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Job opening at Acme", got.Description)
	assert.Contains(t, got.URL, "/job/1-backend")
}

func TestCareers_HubLinksDoNotConsumeCap(t *testing.T) {
	// Category hub links precede the real openings on the page. They pass
	// the link scan but not the classifier, and must not crowd out the
	// genuine postings behind them.
	page := htmlServer(t, `<html><body>
		<a href="/jobs/engineering-roles">Engineering openings list</a>
		<a href="/jobs/design-roles">Design openings list</a>
		<a href="/jobs/sales-roles">Sales openings list</a>
		<a href="/job/1-backend">Senior Backend Engineer</a>
		<a href="/job/2-platform">Platform Engineer (Remote)</a>
	</body></html>`)

	provider := &fakeProvider{results: map[string][]search.Result{
		"Acme careers jobs page": {{Link: page.URL + "/careers"}},
	}}

	profile := testProfile()
	profile.TargetCompanies = []string{"Acme"}

	postings, err := NewCareers(testClient(t), provider, nil).Fetch(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "Senior Backend Engineer", postings[0].Title)
	assert.Equal(t, "Platform Engineer (Remote)", postings[1].Title)
}

func TestCareers_CapsGenuinePostingsPerCompany(t *testing.T) {
	page := htmlServer(t, `<html><body>
		<a href="/job/1-backend">Senior Backend Engineer</a>
		<a href="/job/2-platform">Platform Engineer (Remote)</a>
		<a href="/job/3-data">Senior Data Engineer</a>
		<a href="/job/4-sre">Site Reliability Engineer</a>
		<a href="/job/5-infra">Infrastructure Engineer</a>
	</body></html>`)

	provider := &fakeProvider{results: map[string][]search.Result{
		"Acme careers jobs page": {{Link: page.URL + "/careers"}},
	}}

	profile := testProfile()
	profile.TargetCompanies = []string{"Acme"}

	postings, err := NewCareers(testClient(t), provider, nil).Fetch(context.Background(), profile)
	require.NoError(t, err)
	assert.Len(t, postings, careersMaxPerCompany)
}

func TestCareers_FailedLookupSkipsCompanyOnly(t *testing.T) {
	page := htmlServer(t, `<html><body>
		<a href="/job/1-backend">Senior Backend Engineer</a>
	</body></html>`)

	provider := &fakeProvider{results: map[string][]search.Result{
		// Globex resolves to nothing; Acme resolves normally.
		"Acme careers jobs page": {{Link: page.URL + "/careers"}},
	}}

	profile := testProfile()
	profile.TargetCompanies = []string{"Globex", "Acme"}

	postings, err := NewCareers(testClient(t), provider, nil).Fetch(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Acme", postings[0].Company)
}

func TestCareers_ProviderErrorYieldsNoPostings(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	profile := testProfile()
	profile.TargetCompanies = []string{"Acme"}

	postings, err := NewCareers(testClient(t), provider, nil).Fetch(context.Background(), profile)
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestCareers_CapsCompanies(t *testing.T) {
	provider := &fakeProvider{}
	profile := testProfile()
	for i := 0; i < careersMaxCompanies+10; i++ {
		profile.TargetCompanies = append(profile.TargetCompanies, "Acme")
	}

	_, err := NewCareers(testClient(t), provider, nil).Fetch(context.Background(), profile)
	require.NoError(t, err)
	assert.Len(t, provider.queries, careersMaxCompanies)
}
