package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"amzscraper/internal/cache"
	"amzscraper/internal/model"
	"amzscraper/internal/observability"
)

// Scraper runs the fetch-parse-append loop for one search term. Pages are
// fetched strictly one at a time.
type Scraper struct {
	client      *Client
	base        *url.URL
	cache       *cache.PageCache
	delay       time.Duration
	retryBudget int
}

type Options struct {
	// Cache may be nil, in which case every page hits the network.
	Cache *cache.PageCache
	// PageDelay is slept before each network fetch after the first page.
	PageDelay time.Duration
	// RetryBudget is how many pages after the first may fail before the
	// loop gives up and keeps what it has.
	RetryBudget int
}

// Events carries optional progress callbacks, invoked from the loop
// goroutine in page order.
type Events struct {
	PagesDiscovered func(total int)
	PageFetched     func(page int)
	PageExtracted   func(page, kept, skipped int)
}

func New(client *Client, baseURL string, opts Options) (*Scraper, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	budget := opts.RetryBudget
	if budget <= 0 {
		budget = 3
	}
	return &Scraper{
		client:      client,
		base:        base,
		cache:       opts.Cache,
		delay:       opts.PageDelay,
		retryBudget: budget,
	}, nil
}

// Run scrapes every results page for term and returns the aggregated
// records in page order, card order within page. A failed first page aborts
// the run; later failures burn the retry budget and, once it is gone, the
// partial aggregate is returned so the caller can still save it.
func (s *Scraper) Run(ctx context.Context, term string, ev Events) ([]model.ProductRecord, error) {
	first, err := s.fetchPage(ctx, term, 1)
	if err != nil {
		return nil, fmt.Errorf("first results page: %w", err)
	}
	total := TotalPages(first)
	if ev.PagesDiscovered != nil {
		ev.PagesDiscovered(total)
	}

	var records []model.ProductRecord
	budget := s.retryBudget
	for page := 1; page <= total; page++ {
		html := first
		if page > 1 {
			html, err = s.fetchPage(ctx, term, page)
			if err != nil {
				if ctx.Err() != nil {
					return records, ctx.Err()
				}
				observability.FetchErrors.Inc()
				log.Printf("page %d/%d failed: %v", page, total, err)
				budget--
				if budget <= 0 {
					log.Printf("retry budget exhausted, keeping %d records from %d pages", len(records), page-1)
					break
				}
				continue
			}
		}
		observability.PagesFetched.Inc()
		if ev.PageFetched != nil {
			ev.PageFetched(page)
		}

		result, err := ParseSearchPage(html, s.base)
		if err != nil {
			return records, fmt.Errorf("page %d: %w", page, err)
		}
		for _, sk := range result.Skipped {
			log.Printf("page %d: card %d skipped (%s)", page, sk.Index, sk.Reason)
		}
		records = append(records, result.Products...)
		observability.ProductsScraped.Add(float64(len(result.Products)))
		observability.CardsSkipped.Add(float64(len(result.Skipped)))
		if ev.PageExtracted != nil {
			ev.PageExtracted(page, len(result.Products), len(result.Skipped))
		}
	}
	return records, nil
}

func (s *Scraper) fetchPage(ctx context.Context, term string, page int) (string, error) {
	if s.cache != nil {
		if html, ok := s.cache.Get(ctx, term, page); ok {
			return html, nil
		}
	}
	if page > 1 && s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	html, err := s.client.FetchPage(ctx, PagePath(term, page))
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, term, page, html); err != nil {
			log.Printf("cache page %d: %v", page, err)
		}
	}
	return html, nil
}
