// models/price.go
package models

import "time"

// Source tags for the two feeds that are compared against each other.
const (
	SourceBooksToScrape = "BooksToScrape"
	SourceBookWorld     = "BookWorld"
)

// PriceRecord is one observed price for one product from one source.
// Rows are written once by the loader and never updated afterwards.
type PriceRecord struct {
	ID           int64     `db:"id" json:"id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	Price        float64   `db:"price" json:"price"`
	Availability *string   `db:"availability" json:"availability"` // Nullable
	Source       string    `db:"source" json:"source"`
	ScrapedAt    time.Time `db:"scraped_at" json:"scraped_at"`

	// Product page, only known at extraction time. Not persisted.
	Link string `db:"-" json:"-"`
}

// RawListing is a row of a messy competitor feed before cleaning.
// CSV tags match the feed headers exactly.
type RawListing struct {
	BookName string `csv:"book_name"`
	RawPrice string `csv:"raw_price"`
	URL      string `csv:"url"`
}

// StringPtr is a small helper for the optional availability column.
func StringPtr(s string) *string {
	return &s
}
