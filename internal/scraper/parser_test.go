package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var amazonBase, _ = url.Parse("https://www.amazon.com")

const fullCard = `
<div data-component-type="s-search-result" data-asin="B08GG9CCCN">
	<span class="puis-sponsored-label-text"><span>Sponsored</span></span>
	<h2><a class="a-link-normal s-no-outline" href="/DualSense/dp/B08GG9CCCN/ref=sr_1_1">
		<span class="a-size-medium a-color-base a-text-normal">DualSense Wireless Controller</span>
	</a></h2>
	<img class="s-image" src="https://m.media-amazon.com/images/I/ds.jpg"
		srcset="https://m.media-amazon.com/images/I/ds.jpg 1x, https://m.media-amazon.com/images/I/ds2x.jpg 2x, https://m.media-amazon.com/images/I/ds3x.jpg 3x">
	<span class="a-icon-alt">4.8 out of 5 stars</span>
	<span class="a-size-base s-underline-text">131,476</span>
	<span class="a-price"><span class="a-price-whole">1,069.</span><span class="a-price-fraction">99</span></span>
</div>`

// no price, no rating, no reviews, no srcset
const minimalCard = `
<div data-component-type="s-search-result" data-asin="B0MINIMAL1">
	<h2><a class="a-link-normal s-no-outline" href="/Basic/dp/B0MINIMAL1">
		<span class="a-text-normal">Basic Controller Grip</span>
	</a></h2>
	<img class="s-image" src="https://m.media-amazon.com/images/I/grip.jpg">
</div>`

const noAsinCard = `
<div data-component-type="s-search-result" data-asin="">
	<h2><span class="a-text-normal">Ghost Product</span></h2>
</div>`

const noTitleCard = `
<div data-component-type="s-search-result" data-asin="B0NOTITLE1">
	<span class="a-icon-alt">3.0 out of 5 stars</span>
</div>`

func resultsPage(pagination string, cards ...string) string {
	return fmt.Sprintf(
		`<html><body><div class="s-main-slot">%s</div>%s</body></html>`,
		strings.Join(cards, "\n"), pagination,
	)
}

func TestParseSearchPageFullCard(t *testing.T) {
	result, err := ParseSearchPage(resultsPage("", fullCard), amazonBase)
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	require.Empty(t, result.Skipped)

	p := result.Products[0]
	require.Equal(t, "DualSense Wireless Controller", p.Title)
	require.Equal(t, "B08GG9CCCN", p.ASIN)
	require.NotNil(t, p.Price)
	require.Equal(t, 1069.99, *p.Price)
	require.NotNil(t, p.Rating)
	require.Equal(t, 4.8, *p.Rating)
	require.NotNil(t, p.ReviewCount)
	require.Equal(t, 131476, *p.ReviewCount)
	require.Equal(t, "https://www.amazon.com/DualSense/dp/B08GG9CCCN/ref=sr_1_1", p.PageURL)
	require.Equal(t, "https://m.media-amazon.com/images/I/ds3x.jpg", p.ImageURL)
	require.True(t, p.IsSponsored)
}

func TestParseSearchPageOptionalFieldsNil(t *testing.T) {
	result, err := ParseSearchPage(resultsPage("", minimalCard), amazonBase)
	require.NoError(t, err)
	require.Len(t, result.Products, 1)

	p := result.Products[0]
	require.Nil(t, p.Price)
	require.Nil(t, p.Rating)
	require.Nil(t, p.ReviewCount)
	require.Equal(t, "https://m.media-amazon.com/images/I/grip.jpg", p.ImageURL)
	require.False(t, p.IsSponsored)
}

func TestParseSearchPageSkipsInvalidCards(t *testing.T) {
	result, err := ParseSearchPage(resultsPage("", noAsinCard, fullCard, noTitleCard), amazonBase)
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	require.Equal(t, "B08GG9CCCN", result.Products[0].ASIN)

	require.Len(t, result.Skipped, 2)
	require.Equal(t, SkippedCard{Index: 0, Reason: SkipMissingASIN}, result.Skipped[0])
	require.Equal(t, SkippedCard{Index: 2, Reason: SkipMissingTitle}, result.Skipped[1])
}

func TestParseSearchPageKeepsCardOrder(t *testing.T) {
	result, err := ParseSearchPage(resultsPage("", minimalCard, fullCard), amazonBase)
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	require.Equal(t, "B0MINIMAL1", result.Products[0].ASIN)
	require.Equal(t, "B08GG9CCCN", result.Products[1].ASIN)
}

func TestParseSearchPageNoCards(t *testing.T) {
	result, err := ParseSearchPage(`<html><body><p>No results for asdfqwerty.</p></body></html>`, amazonBase)
	require.NoError(t, err)
	require.Empty(t, result.Products)
	require.Empty(t, result.Skipped)
}

func TestTotalPages(t *testing.T) {
	withPagination := resultsPage(`<span class="s-pagination-item s-pagination-disabled">20</span>`, fullCard)
	require.Equal(t, 20, TotalPages(withPagination))

	require.Equal(t, 1, TotalPages(resultsPage("", fullCard)))

	garbage := resultsPage(`<span class="s-pagination-item s-pagination-disabled">Previous</span>`, fullCard)
	require.Equal(t, 1, TotalPages(garbage))
}
