// Package classify distinguishes genuine job postings from generic careers
// or landing pages based on URL and link-text heuristics.
package classify

import "strings"

// careersHubPatterns are path segments that indicate a generic careers hub
// rather than one specific opening. A URL matching only these wastes the
// user's time.
var careersHubPatterns = []string{
	"careers", "jobs", "about/careers", "company/careers",
	"career-opportunities", "work-with-us", "join-us",
	"talent", "team", "culture",
}

// postingIndicators are URL substrings that point at one specific opening:
// posting-style path segments, requisition tokens, and known applicant
// tracking system domains.
var postingIndicators = []string{
	"/job/", "/position/", "/opening/", "/vacancy/",
	"job-id", "position-id", "req-", "requisition",
	"workday", "greenhouse", "lever", "ashbyhq",
	"breezy", "bamboo", "apply", "jobvite",
}

// genericLabels are link texts that name the careers hub itself.
var genericLabels = []string{"careers", "jobs", "join us", "work with us"}

// IsGenuinePosting reports whether the URL/title pair references one
// specific job opening. Career-page scraping frequently surfaces the hub
// itself as the top link; rejecting on URL pattern alone would also drop
// legitimate short job-board links, so a specific title acts as an escape
// hatch.
func IsGenuinePosting(url, title string) bool {
	urlLower := strings.ToLower(url)
	titleLower := strings.ToLower(strings.TrimSpace(title))

	hasIndicator := false
	for _, indicator := range postingIndicators {
		if strings.Contains(urlLower, indicator) {
			hasIndicator = true
			break
		}
	}

	// A careers-hub match only disqualifies when no stronger posting signal
	// is present; job-board URLs like boards.greenhouse.io/acme/jobs/555
	// match both.
	isJustCareers := false
	if !hasIndicator {
		for _, pattern := range careersHubPatterns {
			if strings.HasSuffix(urlLower, pattern) || strings.Contains(urlLower, "/"+pattern) {
				isJustCareers = true
				break
			}
		}
	}

	hasSpecificTitle := true
	for _, label := range genericLabels {
		if titleLower == label || strings.HasPrefix(titleLower, label+" at") {
			hasSpecificTitle = false
			break
		}
	}

	return (hasIndicator || hasSpecificTitle) && !isJustCareers
}
