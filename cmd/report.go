// cmd/report.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/dashboard"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

var compareLimit int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the analyst report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := services.NewReportService(store).AnalystReport(ctx)
		if err != nil {
			return err
		}
		dashboard.RenderAnalystReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare primary and competitor prices for the same batch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := services.NewReportService(store).Comparison(ctx, compareLimit)
		if err != nil {
			return err
		}
		dashboard.RenderComparison(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	compareCmd.Flags().IntVar(&compareLimit, "limit", 10, "rows to show (0 for all)")
}
