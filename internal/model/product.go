package model

// ProductRecord is one product card scraped from an Amazon search-results
// page. Price, Rating and ReviewCount are nil when the card does not list
// them; a record without a title or ASIN is never created.
type ProductRecord struct {
	Title       string   `csv:"title" json:"title"`
	Price       *float64 `csv:"price" json:"price"`
	Rating      *float64 `csv:"rating" json:"rating"`
	ReviewCount *int     `csv:"review_count" json:"review_count"`
	PageURL     string   `csv:"page_url" json:"page_url"`
	ImageURL    string   `csv:"image_url" json:"image_url"`
	IsSponsored bool     `csv:"is_sponsored" json:"is_sponsored"`
	ASIN        string   `csv:"asin" json:"asin"`
}
