// etl/feed.go
package etl

import (
	"time"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

// CleanFeed turns a messy competitor feed into deduplicated price records:
// names are title-cased, prices are pulled out of their currency strings and
// duplicate titles collapse onto the cheapest listing.
func CleanFeed(listings []models.RawListing, source string, scrapedAt time.Time) []models.PriceRecord {
	records := make([]models.PriceRecord, 0, len(listings))
	for _, listing := range listings {
		records = append(records, models.PriceRecord{
			ProductName: listing.BookName,
			Price:       NormalizePriceString(listing.RawPrice),
			Source:      source,
			ScrapedAt:   scrapedAt,
			Link:        listing.URL,
		})
	}
	return Deduplicate(records)
}
