// cmd/dashboard.go
package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/dashboard"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live terminal dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		reports := services.NewReportService(store)
		model := dashboard.NewModel(reports.DashboardSummary, cfg.Dashboard.RefreshInterval)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = p.Run()
		return err
	},
}
