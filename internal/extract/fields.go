package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSkills caps the number of skill matches returned per page.
const maxSkills = 5

// locationSelectors probe elements whose class or tag suggests a location
// field. Ordered most-specific first.
var locationSelectors = []string{
	"span.location", "span.job-location",
	"div.location", "div.job-location",
	"p.location",
	"[data-testid='location']",
}

// knownLocations are literals matched against page text when no location
// element is found.
var knownLocations = []struct {
	needle string
	label  string
}{
	{"Remote", "Remote"},
	{"San Francisco", "San Francisco, CA"},
	{"New York", "New York, NY"},
	{"London", "London, UK"},
	{"Berlin", "Berlin, Germany"},
	{"Bangalore", "Bangalore, India"},
}

// experiencePatterns match common phrasings of experience requirements
// against lower-cased page text.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`experience:?\s*\d+\+?\s*years?`),
	regexp.MustCompile(`\d+\s*-\s*\d+\s*years?`),
}

// skillVocabulary is the fixed set of technology keywords probed for in
// page text. Match order equals vocabulary order.
var skillVocabulary = []string{
	"python", "java", "javascript", "react", "node", "aws",
	"kubernetes", "docker", "sql", "mongodb", "typescript",
	"golang", "rust", "c++", "machine learning", "ai",
}

// Location extracts a location string from a job page, or "" when none is
// found. Element probes run before the literal scan.
func Location(doc *goquery.Document) string {
	for _, selector := range locationSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			if text := strings.TrimSpace(sel.First().Text()); text != "" {
				return text
			}
		}
	}

	text := doc.Text()
	for _, loc := range knownLocations {
		if strings.Contains(text, loc.needle) {
			return loc.label
		}
	}
	return ""
}

// Experience extracts an experience requirement phrase, or "" when none
// matches.
func Experience(doc *goquery.Document) string {
	text := strings.ToLower(doc.Text())
	for _, pattern := range experiencePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// Skills returns up to maxSkills technology keywords present in the page
// text, in vocabulary order.
func Skills(doc *goquery.Document) []string {
	text := strings.ToLower(doc.Text())
	var skills []string
	for _, skill := range skillVocabulary {
		if strings.Contains(text, skill) {
			skills = append(skills, skill)
			if len(skills) == maxSkills {
				break
			}
		}
	}
	return skills
}
