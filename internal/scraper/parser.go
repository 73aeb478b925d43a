package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"amzscraper/internal/model"
)

// SkipReason tags why a product card produced no record.
type SkipReason string

const (
	SkipMissingASIN  SkipReason = "missing_asin"
	SkipMissingTitle SkipReason = "missing_title"
)

type SkippedCard struct {
	Index  int
	Reason SkipReason
}

// PageResult is the outcome of extracting one results page: the records that
// made it plus the cards that were dropped, in on-page order.
type PageResult struct {
	Products []model.ProductRecord
	Skipped  []SkippedCard
}

var asinPattern = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

// card wraps one search-result fragment. Each accessor locates a single
// field by its structural marker and reports absence instead of failing the
// whole card, so the selectors stay in one place when Amazon shuffles its
// markup again.
type card struct {
	sel *goquery.Selection
}

func (c card) asin() (string, bool) {
	v := strings.TrimSpace(c.sel.AttrOr("data-asin", ""))
	if !asinPattern.MatchString(v) {
		return "", false
	}
	return v, true
}

func (c card) title() (string, bool) {
	t := strings.TrimSpace(c.sel.Find(".a-text-normal").First().Text())
	return t, t != ""
}

func (c card) price() *float64 {
	whole := strings.TrimSpace(c.sel.Find(".a-price-whole").First().Text())
	if whole == "" {
		return nil
	}
	whole = strings.ReplaceAll(whole, ",", "")
	whole = strings.TrimSuffix(whole, ".")
	frac := strings.TrimSpace(c.sel.Find(".a-price-fraction").First().Text())
	if frac == "" {
		frac = "00"
	}
	v, err := strconv.ParseFloat(whole+"."+frac, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (c card) rating() *float64 {
	// "4.8 out of 5 stars"
	fields := strings.Fields(c.sel.Find("span.a-icon-alt").First().Text())
	if len(fields) == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}

func (c card) reviewCount() *int {
	text := strings.TrimSpace(c.sel.Find("span.a-size-base.s-underline-text").First().Text())
	text = strings.ReplaceAll(text, ",", "")
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func (c card) pageURL(base *url.URL) string {
	href := c.sel.Find("a.a-link-normal.s-no-outline").First().AttrOr("href", "")
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func (c card) imageURL() string {
	img := c.sel.Find("img.s-image").First()
	// the srcset ends with the 3x variant, three times the size of the
	// default thumbnail
	if srcset := img.AttrOr("srcset", ""); srcset != "" {
		fields := strings.Fields(srcset)
		if len(fields) >= 2 {
			return fields[len(fields)-2]
		}
	}
	return img.AttrOr("src", "")
}

func (c card) sponsored() bool {
	found := false
	c.sel.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == "Sponsored" {
			found = true
			return false
		}
		return true
	})
	return found
}

// ParseSearchPage extracts every product card from one results page. Cards
// without a valid ASIN or a title are skipped with a reason rather than
// producing a partial record. Product URLs are resolved against base.
func ParseSearchPage(html string, base *url.URL) (PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageResult{}, fmt.Errorf("parse results page: %w", err)
	}

	var result PageResult
	doc.Find(`div[data-component-type="s-search-result"]`).Each(func(i int, sel *goquery.Selection) {
		c := card{sel: sel}

		asin, ok := c.asin()
		if !ok {
			result.Skipped = append(result.Skipped, SkippedCard{Index: i, Reason: SkipMissingASIN})
			return
		}
		title, ok := c.title()
		if !ok {
			result.Skipped = append(result.Skipped, SkippedCard{Index: i, Reason: SkipMissingTitle})
			return
		}

		result.Products = append(result.Products, model.ProductRecord{
			Title:       title,
			Price:       c.price(),
			Rating:      c.rating(),
			ReviewCount: c.reviewCount(),
			PageURL:     c.pageURL(base),
			ImageURL:    c.imageURL(),
			IsSponsored: c.sponsored(),
			ASIN:        asin,
		})
	})
	return result, nil
}

// TotalPages reads the page count off the disabled pagination element of the
// first results page. No pagination element means a single-page result, not
// an error.
func TotalPages(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1
	}
	text := strings.TrimSpace(doc.Find("span.s-pagination-item.s-pagination-disabled").First().Text())
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
