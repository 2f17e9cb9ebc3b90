// scraper/feed.go
package scraper

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/jszwec/csvutil"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

// ParseFeedCSV decodes a messy competitor feed. Headers must match the csv tags of
// models.RawListing (book_name, raw_price, url).
func ParseFeedCSV(reader io.Reader) ([]models.RawListing, error) {
	var listings []models.RawListing

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("competitor feed is empty")
		}
		return nil, fmt.Errorf("failed to create CSV decoder for competitor feed: %w", err)
	}

	if err := decoder.Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode competitor feed: %w", err)
	}

	log.Printf("Scraper: parsed %d raw listings from competitor feed.", len(listings))
	return listings, nil
}

// WriteFeedCSV encodes listings with a header row.
func WriteFeedCSV(w io.Writer, listings []models.RawListing) error {
	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)
	if err := encoder.Encode(listings); err != nil {
		return fmt.Errorf("failed to encode competitor feed: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write competitor feed: %w", err)
	}
	return nil
}

// SampleMessyFeed is a competitor feed with the usual problems: inconsistent
// capitalization, currency symbols and codes, and a duplicate title at a lower price.
func SampleMessyFeed() []models.RawListing {
	return []models.RawListing{
		{BookName: "The Requiem Red", RawPrice: "$ 22.65", URL: "http://bookworld.com/item1"},
		{BookName: "the requiem red", RawPrice: "USD 22.00", URL: "http://bookworld.com/item1-promo"},
		{BookName: "STARVING HEARTS (TRIANGULAR TRADE TRILOGY, #1)", RawPrice: "£14.00", URL: "http://bookworld.com/item2"},
		{BookName: "Olio", RawPrice: "23.88 GBP", URL: "http://bookworld.com/item3"},
		{BookName: "set me free", RawPrice: "17.00", URL: "http://bookworld.com/item4"},
		{BookName: "SHAKESPEARE'S SONNETS", RawPrice: "$20.00", URL: "http://bookworld.com/item5"},
		{BookName: "The Black Maria", RawPrice: "18.50", URL: "http://bookworld.com/item6"},
	}
}
