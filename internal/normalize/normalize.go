// Package normalize maps heterogeneous adapter output onto the canonical
// posting schema. Pure functions: no network, no state, order independent.
package normalize

import (
	"strings"

	"github.com/jonathan/jobradar/internal/types"
)

const (
	// FallbackTitle replaces an empty title
	FallbackTitle = "Unknown Position"
	// FallbackCompany replaces an empty company
	FallbackCompany = "Unknown Company"
	// FallbackField replaces an empty location or experience
	FallbackField = "Not specified"

	// MaxTitleLength bounds stored titles
	MaxTitleLength = 100
	// MaxDescriptionLength bounds stored description snippets
	MaxDescriptionLength = 200
)

// Posting converts one RawPosting into its canonical form, applying field
// fallbacks and truncation limits.
func Posting(raw types.RawPosting) types.NormalizedPosting {
	return types.NormalizedPosting{
		Title:       orFallback(Truncate(raw.Title, MaxTitleLength), FallbackTitle),
		Company:     orFallback(strings.TrimSpace(raw.Company), FallbackCompany),
		Location:    orFallback(strings.TrimSpace(raw.Location), FallbackField),
		Experience:  orFallback(strings.TrimSpace(raw.Experience), FallbackField),
		Skills:      raw.Skills,
		ApplyURL:    raw.URL,
		Description: Truncate(raw.Description, MaxDescriptionLength),
		Source:      raw.Source,
	}
}

// Postings converts a batch of raw postings, preserving order.
func Postings(raws []types.RawPosting) []types.NormalizedPosting {
	normalized := make([]types.NormalizedPosting, 0, len(raws))
	for _, raw := range raws {
		normalized = append(normalized, Posting(raw))
	}
	return normalized
}

// Truncate bounds s to at most limit characters. The limit counts runes,
// not bytes, so multibyte titles keep their full length and the cut never
// splits a rune.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
