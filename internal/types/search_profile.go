// Package types provides type definitions for structured data used throughout the jobradar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// SearchProfile is the caller-supplied bundle of role, skills, and generated
// queries that drives one discovery run. It is produced by the query-generation
// collaborator and consumed read-only.
type SearchProfile struct {
	TargetRole      string   `json:"target_role" validate:"required"`
	PrimarySkills   []string `json:"primary_skills"`   // ranked, most relevant first
	SearchQueries   []string `json:"search_queries"`   // generated search-engine query strings
	TargetCompanies []string `json:"target_companies"` // company names for career-page discovery
}

var profileValidator = validator.New()

// Validate checks that the profile has the fields required to run a discovery.
func (p *SearchProfile) Validate() error {
	return profileValidator.Struct(p)
}

// SearchTerm returns the single term used by public job-board adapters:
// the top-ranked skill, or the first word of the target role when no
// skills are present.
func (p *SearchProfile) SearchTerm() string {
	if len(p.PrimarySkills) > 0 && p.PrimarySkills[0] != "" {
		return p.PrimarySkills[0]
	}
	if words := strings.Fields(p.TargetRole); len(words) > 0 {
		return words[0]
	}
	return ""
}
