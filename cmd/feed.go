// cmd/feed.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/scraper"
)

var (
	feedOut string
	feedURL string
)

var generateFeedCmd = &cobra.Command{
	Use:   "generate-feed",
	Short: "Write a sample messy competitor feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dir := filepath.Dir(feedOut); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
		f, err := os.Create(feedOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", feedOut, err)
		}
		defer f.Close()

		listings := scraper.SampleMessyFeed()
		if err := scraper.WriteFeedCSV(f, listings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d messy listings to %s\n", len(listings), feedOut)
		return nil
	},
}

var fetchFeedCmd = &cobra.Command{
	Use:   "fetch-feed",
	Short: "Download a competitor feed CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraper.NewClient(cfg.Scraper)
		if err := scraper.DownloadFeed(cmd.Context(), client, feedURL, feedOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", feedURL, feedOut)
		return nil
	},
}

func init() {
	generateFeedCmd.Flags().StringVar(&feedOut, "out", "competitor_data.csv", "output CSV path")

	fetchFeedCmd.Flags().StringVar(&feedURL, "url", "", "feed URL")
	fetchFeedCmd.Flags().StringVar(&feedOut, "out", "competitor_data.csv", "output CSV path")
	fetchFeedCmd.MarkFlagRequired("url")
}
