// Package dedupe collapses postings that represent the same job.
package dedupe

import (
	"strings"

	"github.com/jonathan/jobradar/internal/types"
)

// Key returns the dedup key for a posting: lower-cased title plus
// lower-cased company. Deliberately coarse; near-duplicate titles with
// punctuation differences are not merged; that is a documented limitation,
// not a bug.
func Key(p types.NormalizedPosting) string {
	return strings.ToLower(p.Title) + "|" + strings.ToLower(p.Company)
}

// Postings removes later duplicates from an ordered sequence, preserving
// the first occurrence. Input order is arrival order across sources and
// serves as the tie-break for "first seen". Idempotent.
func Postings(postings []types.NormalizedPosting) []types.NormalizedPosting {
	seen := make(map[string]bool, len(postings))
	unique := make([]types.NormalizedPosting, 0, len(postings))
	for _, p := range postings {
		key := Key(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return unique
}
