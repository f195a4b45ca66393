package types

import "time"

// SourceOutcome summarizes one source's contribution to a run. A non-empty
// Err never fails the run; it exists for the caller to judge coverage.
type SourceOutcome struct {
	Source      Source `json:"source"`
	Count       int    `json:"count"`
	Err         string `json:"error,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"` // required credential absent, source skipped
}

// AggregationResult is the output of one discovery run: the deduplicated
// postings in first-seen order plus per-source outcomes.
type AggregationResult struct {
	RunID    string                   `json:"run_id"`
	Postings []NormalizedPosting      `json:"jobs"`
	Outcomes map[Source]SourceOutcome `json:"sources_scraped"`
	Total    int                      `json:"total_jobs"`
	Elapsed  time.Duration            `json:"-"`
}
