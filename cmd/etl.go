// cmd/etl.go
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/etl"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/scraper"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

var (
	etlCSV    string
	etlLoad   bool
	etlSource string
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Clean and deduplicate a messy competitor CSV feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(etlCSV)
		if err != nil {
			return fmt.Errorf("failed to open feed %s: %w", etlCSV, err)
		}
		defer f.Close()

		listings, err := scraper.ParseFeedCSV(f)
		if err != nil {
			return err
		}

		if !etlLoad {
			cleaned := etl.CleanFeed(listings, etlSource, time.Now().UTC().Truncate(time.Second))
			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetTitle(fmt.Sprintf("%d listings cleaned to %d unique books", len(listings), len(cleaned)))
			t.AppendHeader(table.Row{"Title", "Price"})
			for _, rec := range cleaned {
				t.AppendRow(table.Row{rec.ProductName, fmt.Sprintf("%.2f", rec.Price)})
			}
			t.Render()
			return nil
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := services.NewPipelineService(nil, store, nil, nil).LoadFeed(ctx, listings, etlSource)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d of %d listings as %s\n", summary.CompetitorLoaded, summary.Extracted, etlSource)
		return nil
	},
}

func init() {
	etlCmd.Flags().StringVar(&etlCSV, "csv", "", "messy feed with book_name,raw_price,url columns")
	etlCmd.Flags().BoolVar(&etlLoad, "load", false, "append the cleaned rows to the price table")
	etlCmd.Flags().StringVar(&etlSource, "source", models.SourceBookWorld, "source tag for the loaded rows")
	etlCmd.MarkFlagRequired("csv")
}
