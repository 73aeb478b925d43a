package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"amzscraper/internal/model"
)

type ProductRepository struct {
	DB *sql.DB
}

// Save upserts one record keyed by (search_term, asin), so re-running a
// search refreshes rows instead of duplicating them.
func (r *ProductRepository) Save(term string, p model.ProductRecord) error {
	var exists bool
	err := r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM product_search_results WHERE search_term = $1 AND asin = $2)", term, p.ASIN).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(`
			UPDATE product_search_results
			SET title = $1, price = $2, rating = $3, review_count = $4,
			    page_url = $5, image_url = $6, is_sponsored = $7, scraped_at = now()
			WHERE search_term = $8 AND asin = $9
		`, p.Title, p.Price, p.Rating, p.ReviewCount, p.PageURL, p.ImageURL, p.IsSponsored, term, p.ASIN)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO product_search_results
			(id, search_term, asin, title, price, rating, review_count, page_url, image_url, is_sponsored, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		`, uuid.New().String(), term, p.ASIN, p.Title, p.Price, p.Rating, p.ReviewCount, p.PageURL, p.ImageURL, p.IsSponsored)
	}

	return err
}

func (r *ProductRepository) SaveAll(term string, records []model.ProductRecord) error {
	for _, p := range records {
		if err := r.Save(term, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) List(term string) ([]model.ProductRecord, error) {
	rows, err := r.DB.Query(`
		SELECT title, price, rating, review_count, page_url, image_url, is_sponsored, asin
		FROM product_search_results
		WHERE search_term = $1
	`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.ProductRecord
	for rows.Next() {
		var p model.ProductRecord
		rows.Scan(&p.Title, &p.Price, &p.Rating, &p.ReviewCount, &p.PageURL, &p.ImageURL, &p.IsSponsored, &p.ASIN)
		list = append(list, p)
	}

	return list, nil
}
