// services/pipeline_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/etl"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/scraper"
)

// Extractor produces primary-source records for one listing page.
type Extractor interface {
	Scrape(ctx context.Context, pageURL string, scrapedAt time.Time, hook scraper.Hook) ([]models.PriceRecord, error)
}

// RunSummary describes one pipeline run.
type RunSummary struct {
	RunID            string    `json:"run_id"`
	ScrapedAt        time.Time `json:"scraped_at"`
	Extracted        int       `json:"extracted"`
	Unique           int       `json:"unique"`
	PrimaryLoaded    int       `json:"primary_loaded"`
	CompetitorLoaded int       `json:"competitor_loaded"`
}

// PipelineService runs extraction, cleaning, competitor synthesis and loading.
type PipelineService struct {
	extractor   Extractor
	store       *database.PriceStore
	synthesizer *etl.Synthesizer
	hook        scraper.Hook
	now         func() time.Time
}

// NewPipelineService wires a pipeline. hook may be nil; a nil synthesizer disables
// the competitor feed.
func NewPipelineService(extractor Extractor, store *database.PriceStore, synthesizer *etl.Synthesizer, hook scraper.Hook) *PipelineService {
	return &PipelineService{
		extractor:   extractor,
		store:       store,
		synthesizer: synthesizer,
		hook:        hook,
		now:         time.Now,
	}
}

// batchTime is shared by every row written in one run.
func (s *PipelineService) batchTime() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// Run scrapes pageURL and appends the cleaned primary batch followed by the
// synthesized competitor batch. Both batches carry the same scraped_at.
func (s *PipelineService) Run(ctx context.Context, pageURL string) (RunSummary, error) {
	summary := RunSummary{RunID: uuid.NewString(), ScrapedAt: s.batchTime()}
	log.Printf("Service: [%s] starting price run for %s", summary.RunID, pageURL)

	records, err := s.extractor.Scrape(ctx, pageURL, summary.ScrapedAt, s.hook)
	if err != nil {
		log.Printf("ERROR Service: [%s] extraction failed: %v", summary.RunID, err)
		return summary, err
	}
	summary.Extracted = len(records)
	if len(records) == 0 {
		log.Printf("WARN Service: [%s] no records extracted, nothing to load.", summary.RunID)
		return summary, nil
	}

	primary := etl.Deduplicate(records)
	summary.Unique = len(primary)

	summary.PrimaryLoaded, err = s.store.Append(ctx, primary)
	if err != nil {
		return summary, fmt.Errorf("failed to load %s batch: %w", models.SourceBooksToScrape, err)
	}

	if s.synthesizer != nil {
		competitor := s.synthesizer.Synthesize(primary)
		summary.CompetitorLoaded, err = s.store.Append(ctx, competitor)
		if err != nil {
			return summary, fmt.Errorf("failed to load competitor batch: %w", err)
		}
	}

	log.Printf("Service: [%s] run complete: %d extracted, %d unique, %d primary + %d competitor rows loaded.",
		summary.RunID, summary.Extracted, summary.Unique, summary.PrimaryLoaded, summary.CompetitorLoaded)
	return summary, nil
}

// LoadFeed cleans a messy competitor feed and appends it under source.
func (s *PipelineService) LoadFeed(ctx context.Context, listings []models.RawListing, source string) (RunSummary, error) {
	summary := RunSummary{RunID: uuid.NewString(), ScrapedAt: s.batchTime(), Extracted: len(listings)}
	log.Printf("Service: [%s] cleaning %d feed listings for %s", summary.RunID, len(listings), source)

	cleaned := etl.CleanFeed(listings, source, summary.ScrapedAt)
	summary.Unique = len(cleaned)

	n, err := s.store.Append(ctx, cleaned)
	if err != nil {
		return summary, fmt.Errorf("failed to load %s feed: %w", source, err)
	}
	summary.CompetitorLoaded = n

	log.Printf("Service: [%s] feed loaded: %d listings, %d unique rows.", summary.RunID, summary.Extracted, n)
	return summary, nil
}
