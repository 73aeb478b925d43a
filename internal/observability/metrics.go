package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_pages_fetched_total",
			Help: "Total result pages downloaded",
		},
	)
	FetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_fetch_errors_total",
			Help: "Total failed page downloads",
		},
	)
	ProductsScraped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_products_total",
			Help: "Total product records extracted",
		},
	)
	CardsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_cards_skipped_total",
			Help: "Total product cards skipped for missing required fields",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(PagesFetched, FetchErrors, ProductsScraped, CardsSkipped)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
