package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// NormalizeTerm trims a user-entered search term and collapses runs of
// whitespace, so "  PS5   controller " and "PS5 controller" hit the same
// search URL and the same cache key.
func NormalizeTerm(term string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(term), " ")
}

// SearchPath returns the results path for a search term.
func SearchPath(term string) string {
	q := url.Values{"k": {NormalizeTerm(term)}}
	return "/s?" + q.Encode()
}

// PagePath returns the results path for one page of a search.
func PagePath(term string, page int) string {
	if page <= 1 {
		return SearchPath(term)
	}
	return fmt.Sprintf("%s&page=%d", SearchPath(term), page)
}
