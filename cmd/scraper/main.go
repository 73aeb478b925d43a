package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/redis/go-redis/v9"

	"amzscraper/internal/cache"
	"amzscraper/internal/config"
	"amzscraper/internal/csvout"
	"amzscraper/internal/db"
	"amzscraper/internal/observability"
	"amzscraper/internal/repository"
	"amzscraper/internal/scraper"
)

func main() {
	term := promptSearchTerm()

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	var pageCache *cache.PageCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		pageCache = &cache.PageCache{Client: redis.NewClient(opts)}
	}

	var repo *repository.ProductRepository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		repo = &repository.ProductRepository{DB: dbConn}
	}

	client, err := scraper.NewClient(cfg.BaseURL)
	if err != nil {
		log.Fatalf("http client: %v", err)
	}
	s, err := scraper.New(client, cfg.BaseURL, scraper.Options{
		Cache:       pageCache,
		PageDelay:   cfg.PageDelay,
		RetryBudget: cfg.PageRetryBudget,
	})
	if err != nil {
		log.Fatalf("scraper: %v", err)
	}

	fmt.Println("Fetching data, please wait...")

	pw := progress.NewWriter()
	pw.SetTrackerLength(30)
	pw.SetTrackerPosition(progress.PositionRight)
	go pw.Render()

	download := progress.Tracker{Message: "Downloading pages"}
	extract := progress.Tracker{Message: "Extracting products"}

	records, err := s.Run(context.Background(), term, scraper.Events{
		PagesDiscovered: func(total int) {
			download.Total = int64(total)
			extract.Total = int64(total)
			pw.AppendTracker(&download)
			pw.AppendTracker(&extract)
		},
		PageFetched:   func(int) { download.Increment(1) },
		PageExtracted: func(int, int, int) { extract.Increment(1) },
	})
	download.MarkAsDone()
	extract.MarkAsDone()
	pw.Stop()
	if err != nil {
		log.Fatalf("scrape %q: %v", term, err)
	}

	path, err := csvout.Write(cfg.OutputDir, term, records)
	if err != nil {
		log.Fatalf("write csv: %v", err)
	}
	log.Printf("saved %d products to %s", len(records), path)

	if repo != nil {
		if err := repo.SaveAll(term, records); err != nil {
			log.Printf("persist to postgres: %v", err)
		}
	}
}

func promptSearchTerm() string {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Search amazon.com: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("read search term: %v", err)
		}
		if term := strings.TrimSpace(line); term != "" {
			return term
		}
	}
}
