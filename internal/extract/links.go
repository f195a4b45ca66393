// Package extract provides best-effort heuristics for pulling job posting
// candidates and posting fields out of unstructured HTML. Every extraction
// is advisory: a missing value never drops a posting.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxLinks is the per-page cap on extracted posting links.
const DefaultMaxLinks = 3

// minLinkTextLength filters out icon links and nav stubs.
const minLinkTextLength = 10

// jobPathIndicators mark a URL as pointing at a posting: posting-style path
// segments and known applicant tracking system domains.
var jobPathIndicators = []string{
	"/job/", "/jobs/", "/position/", "/opening/",
	"greenhouse.io", "lever.co", "workday.com", "ashbyhq.com",
}

// genericJobTokens are the looser URL tokens accepted by the keyword
// fallback strategy.
var genericJobTokens = []string{"job", "career", "position", "opening", "apply"}

// Link is a candidate posting link found on a page.
type Link struct {
	URL   string
	Title string
}

// Options configures posting-link extraction.
type Options struct {
	MaxLinks     int      // per-page cap; DefaultMaxLinks when zero
	RoleKeywords []string // lower-cased role words for the fallback strategy
}

// linkStrategy is one way of locating posting links on a page. Strategies
// are tried in order until one yields results.
type linkStrategy func(doc *goquery.Document, base *url.URL, opts *Options) []Link

// PostingLinks scans a page for links that look like individual job
// postings. The direct scan (posting-indicator URLs) runs first; if it
// finds nothing, a looser keyword scan over the role words runs instead.
func PostingLinks(doc *goquery.Document, baseURL string, opts *Options) ([]Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &LinkError{Message: "invalid base URL: " + baseURL, Cause: err}
	}
	if opts == nil {
		opts = &Options{}
	}

	strategies := []linkStrategy{directLinkScan, keywordLinkScan}
	for _, strategy := range strategies {
		if links := strategy(doc, base, opts); len(links) > 0 {
			return links, nil
		}
	}
	return nil, nil
}

// directLinkScan keeps anchors whose resolved URL carries a posting
// indicator or ATS domain.
func directLinkScan(doc *goquery.Document, base *url.URL, opts *Options) []Link {
	limit := maxLinks(opts)
	seen := make(map[string]bool)
	var links []Link

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || len(text) < minLinkTextLength {
			return true
		}

		if !containsAny(strings.ToLower(href), jobPathIndicators) {
			return true
		}

		absolute, ok := resolve(base, href)
		if !ok || seen[absolute] {
			return true
		}
		seen[absolute] = true
		links = append(links, Link{URL: absolute, Title: text})
		return len(links) < limit
	})

	return links
}

// keywordLinkScan is the fallback: anchor text mentioning a role keyword
// plus any generic job-related token in the URL.
func keywordLinkScan(doc *goquery.Document, base *url.URL, opts *Options) []Link {
	if len(opts.RoleKeywords) == 0 {
		return nil
	}
	limit := maxLinks(opts)
	seen := make(map[string]bool)
	var links []Link

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return true
		}

		textLower := strings.ToLower(text)
		if !containsAny(textLower, opts.RoleKeywords) {
			return true
		}

		absolute, ok := resolve(base, href)
		if !ok || seen[absolute] {
			return true
		}
		if !containsAny(strings.ToLower(absolute), genericJobTokens) {
			return true
		}
		seen[absolute] = true
		links = append(links, Link{URL: absolute, Title: text})
		return len(links) < limit
	})

	return links
}

// resolve turns href into an absolute URL against base.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	absolute := base.ResolveReference(ref)
	if absolute.Scheme == "" || absolute.Host == "" {
		return "", false
	}
	absolute.Fragment = ""
	return absolute.String(), true
}

func maxLinks(opts *Options) int {
	if opts.MaxLinks > 0 {
		return opts.MaxLinks
	}
	return DefaultMaxLinks
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
