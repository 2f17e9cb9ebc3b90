// cmd/run.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/alerts"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/etl"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/scraper"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the catalog, synthesize the competitor feed and load both",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := newPipeline(store).Run(ctx, cfg.Scraper.URL)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d scraped, %d unique, %d %s + %d %s rows loaded at %s\n",
			summary.RunID, summary.Extracted, summary.Unique,
			summary.PrimaryLoaded, models.SourceBooksToScrape,
			summary.CompetitorLoaded, models.SourceBookWorld,
			summary.ScrapedAt.Format("2006-01-02 15:04:05Z07:00"))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&scrapeURL, "url", "", "listing page to scrape (overrides SCRAPE_URL)")
	runCmd.Flags().Float64Var(&alertThreshold, "alert-below", 0, "email an alert for every book cheaper than this (overrides ALERT_THRESHOLD)")
}

func newPipeline(store *database.PriceStore) *services.PipelineService {
	client := scraper.NewClient(cfg.Scraper)

	var hook scraper.Hook
	if cfg.Alerts.Threshold > 0 {
		hook = alerts.ThresholdHook(cfg.Alerts.Threshold, alerts.NewEmailNotifier(cfg.Alerts))
	}

	return services.NewPipelineService(
		scraper.NewBookScraper(client),
		store,
		etl.NewSynthesizer(nil, models.SourceBookWorld),
		hook,
	)
}
