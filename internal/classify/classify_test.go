package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGenuinePosting_RejectsCareersHub(t *testing.T) {
	assert.False(t, IsGenuinePosting("https://acme.com/careers", "Careers"))
}

func TestIsGenuinePosting_AcceptsSpecificJobPath(t *testing.T) {
	assert.True(t, IsGenuinePosting("https://acme.com/job/1234-backend-engineer", "Backend Engineer"))
}

func TestIsGenuinePosting_AcceptsATSBoardLink(t *testing.T) {
	// The /jobs/ segment alone looks like a hub, but the ATS domain is a
	// stronger signal.
	assert.True(t, IsGenuinePosting("https://boards.greenhouse.io/acme/jobs/555", "Senior SRE"))
}

func TestIsGenuinePosting_RejectsGenericTitleOnHub(t *testing.T) {
	assert.False(t, IsGenuinePosting("https://acme.com/about/careers", "Jobs"))
	assert.False(t, IsGenuinePosting("https://acme.com/join-us", "Join Us"))
	assert.False(t, IsGenuinePosting("https://acme.com/careers", "Careers at Acme"))
}

func TestIsGenuinePosting_SpecificTitleEscapesLabelCheck(t *testing.T) {
	// A short job-board link with a real title should not be rejected just
	// because the URL carries no posting indicator.
	assert.True(t, IsGenuinePosting("https://example.io/x7f3", "Staff Platform Engineer"))
}

func TestIsGenuinePosting_TalentAndCulturePages(t *testing.T) {
	assert.False(t, IsGenuinePosting("https://acme.com/talent", "Meet the team"))
	assert.False(t, IsGenuinePosting("https://acme.com/company/culture", "Our culture"))
}

func TestIsGenuinePosting_RequisitionTokens(t *testing.T) {
	assert.True(t, IsGenuinePosting("https://acme.com/openings?req-4521", "Data Engineer"))
	assert.True(t, IsGenuinePosting("https://acme.wd1.myworkdayjobs.com/en-US/acme/details/eng", "Software Engineer II"))
}

func TestIsGenuinePosting_CaseInsensitive(t *testing.T) {
	assert.False(t, IsGenuinePosting("https://acme.com/Careers", "CAREERS"))
	assert.True(t, IsGenuinePosting("https://acme.com/JOB/99", "Backend Engineer"))
}
