// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobradar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchProfile outputs a human-readable summary of the profile
// driving the run.
func (p *Printer) PrintSearchProfile(profile *types.SearchProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:      %s\n", profile.TargetRole))

	if len(profile.PrimarySkills) > 0 {
		count := min(len(profile.PrimarySkills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills:    %s", strings.Join(profile.PrimarySkills[:count], ", ")))
		if len(profile.PrimarySkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(profile.PrimarySkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Queries:   %d\n", len(profile.SearchQueries)))
	sb.WriteString(fmt.Sprintf("Companies: %d", len(profile.TargetCompanies)))

	p.printBox("SEARCH PROFILE", sb.String())
}

// PrintResult outputs a per-source outcome table and a posting summary
// for one aggregation run.
func (p *Printer) PrintResult(result *types.AggregationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for _, outcome := range sortedOutcomes(result.Outcomes) {
		status := fmt.Sprintf("%d postings", outcome.Count)
		switch {
		case outcome.Unavailable:
			status = "unavailable"
		case outcome.Err != "":
			status = "error: " + outcome.Err
		}
		sb.WriteString(fmt.Sprintf("%-16s %s\n", outcome.Source, status))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d unique postings in %s", result.Total, result.Elapsed.Round(10*time.Millisecond)))

	p.printBox("SOURCES", sb.String())

	if len(result.Postings) == 0 {
		return
	}

	var jobs strings.Builder
	count := min(len(result.Postings), maxItemsToShow)
	for i := 0; i < count; i++ {
		posting := result.Postings[i]
		jobs.WriteString(fmt.Sprintf("• %s - %s (%s)\n", posting.Title, posting.Company, posting.Location))
	}
	if len(result.Postings) > maxItemsToShow {
		jobs.WriteString(fmt.Sprintf("... and %d more", len(result.Postings)-maxItemsToShow))
	}
	p.printBox("TOP POSTINGS", jobs.String())
}

// sortedOutcomes returns outcomes in stable source-name order.
func sortedOutcomes(outcomes map[types.Source]types.SourceOutcome) []types.SourceOutcome {
	sorted := make([]types.SourceOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		sorted = append(sorted, outcome)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Source < sorted[j].Source })
	return sorted
}
