// Package sources contains one adapter per external job source. Every
// adapter implements the same Fetch contract: it never lets one failed
// request abort the whole source, caps its results, returns nothing (not
// an error) when no data is found, and reports ErrUnavailable instead of
// attempting to run without a required credential.
package sources

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jonathan/jobradar/internal/types"
)

// ErrUnavailable marks a source that cannot run because its required
// credential is absent. It is an outcome, not a failure.
var ErrUnavailable = errors.New("required credential absent")

// Source is the uniform capability every adapter implements.
type Source interface {
	// Name returns the source identifier used in outcomes and postings.
	Name() types.Source

	// Fetch runs the source against the profile and returns its raw
	// postings. A returned error is recorded as the source outcome; it
	// never propagates beyond the orchestrator.
	Fetch(ctx context.Context, profile *types.SearchProfile) ([]types.RawPosting, error)
}

// companyFromURL derives a display company name from a posting URL's
// domain.
func companyFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "Company"
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	name := strings.Split(host, ".")[0]
	if name == "" {
		return "Company"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// roleKeywords lower-cases and splits a target role for keyword matching.
func roleKeywords(role string) []string {
	return strings.Fields(strings.ToLower(role))
}
