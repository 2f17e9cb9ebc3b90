// scraper/books.go
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/config"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/etl"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

// Hook is called once per extracted record, e.g. to raise a price alert.
type Hook func(ctx context.Context, record models.PriceRecord)

// BookScraper reads the product grid of a books.toscrape.com style listing page.
type BookScraper struct {
	client *resty.Client
}

// NewClient builds the HTTP client shared by the scraper and the feed downloader.
func NewClient(cfg config.ScraperConfig) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().SetTimeout(timeout)
	if cfg.UserAgent != "" {
		// Look like a browser, some catalogs block the default Go agent.
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	return client
}

func NewBookScraper(client *resty.Client) *BookScraper {
	return &BookScraper{client: client}
}

// Scrape fetches pageURL and returns one record per product card, all stamped with
// scrapedAt and tagged as the primary source. hook may be nil.
func (s *BookScraper) Scrape(ctx context.Context, pageURL string, scrapedAt time.Time, hook Hook) ([]models.PriceRecord, error) {
	log.Printf("Scraper: requesting listing page %s", pageURL)

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Err: fmt.Errorf("invalid URL: %w", err)}
	}

	res, err := s.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Err: fmt.Errorf("failed to get URL: %w", err)}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &ExtractionError{URL: pageURL, Err: fmt.Errorf("status code %d", res.StatusCode())}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	records := ParseListing(doc, base, scrapedAt)
	if len(records) == 0 {
		log.Printf("WARN Scraper: no product cards found on %s. Verify the page structure.", pageURL)
	}
	log.Printf("Scraper: scraped %d books from %s", len(records), pageURL)

	if hook != nil {
		for _, record := range records {
			hook(ctx, record)
		}
	}
	return records, nil
}

// ParseListing extracts records from every `article.product_pod` card of doc.
// Relative product links are resolved against base, which may be nil.
func ParseListing(doc *goquery.Document, base *url.URL, scrapedAt time.Time) []models.PriceRecord {
	records := []models.PriceRecord{}
	doc.Find("article.product_pod").Each(func(i int, card *goquery.Selection) {
		anchor := card.Find("h3 a").First()
		title := strings.TrimSpace(anchor.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}
		if title == "" {
			log.Printf("WARN Scraper: skipping product card %d without a title", i)
			return
		}

		priceText := strings.TrimSpace(card.Find("p.price_color").First().Text())
		record := models.PriceRecord{
			ProductName: title,
			Price:       etl.NormalizePriceString(priceText),
			Source:      models.SourceBooksToScrape,
			ScrapedAt:   scrapedAt,
			Link:        resolveLink(base, anchor.AttrOr("href", "")),
		}

		if stock := card.Find("p.availability").First(); stock.Length() > 0 {
			record.Availability = models.StringPtr(strings.Join(strings.Fields(stock.Text()), " "))
		}
		records = append(records, record)
	})
	return records
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
