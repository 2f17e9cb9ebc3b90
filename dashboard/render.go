// dashboard/render.go

// Package dashboard renders price summaries for the terminal: plain tables for the
// one-shot reports and a refreshing bubbletea view for the live dashboard.
package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

const barWidth = 40

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if w != nil {
		t.SetOutputMirror(w)
	}
	return t
}

func money(v float64) string {
	return fmt.Sprintf("£%.2f", v)
}

// RenderAnalystReport prints the three analyst answers: average price, stock
// status counts and the most expensive titles.
func RenderAnalystReport(w io.Writer, report models.AnalystReport) {
	fmt.Fprintf(w, "Average book price: %s\n\n", money(report.AveragePrice))

	inv := newTable(w)
	inv.SetTitle("Inventory status")
	inv.AppendHeader(table.Row{"Availability", "Books"})
	for _, gc := range report.Inventory {
		value := gc.Value
		if value == "" {
			value = "(unknown)"
		}
		inv.AppendRow(table.Row{value, gc.Count})
	}
	inv.Render()
	fmt.Fprintln(w)

	top := newTable(w)
	top.SetTitle("Most expensive books")
	top.AppendHeader(table.Row{"#", "Title", "Price", "Source"})
	for i, rec := range report.MostExpensive {
		top.AppendRow(table.Row{i + 1, rec.ProductName, money(rec.Price), rec.Source})
	}
	top.Render()
}

// RenderComparison prints one row per product priced by both sources.
func RenderComparison(w io.Writer, rows []models.PriceComparison) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No products are priced by both sources in the same batch yet.")
		return
	}

	t := newTable(w)
	t.SetTitle("Price comparison")
	t.AppendHeader(table.Row{"Title", models.SourceBooksToScrape, models.SourceBookWorld, "Difference"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.ProductName, money(r.PrimaryPrice), money(r.CompetitorPrice), fmt.Sprintf("%+.2f", r.Difference)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// HistogramChart draws one horizontal bar per bin, scaled to the fullest bin.
func HistogramChart(bins []models.HistogramBin) string {
	maxCount := 0
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
	}
	if maxCount == 0 {
		return "(no prices)"
	}

	var sb strings.Builder
	for _, b := range bins {
		n := b.Count * barWidth / maxCount
		if b.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&sb, "%8s - %-8s %s %d\n", money(b.Lower), money(b.Upper), barStyle.Render(strings.Repeat("█", n)), b.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func cheapestTable(records []models.PriceRecord) string {
	t := newTable(nil)
	t.AppendHeader(table.Row{"Title", "Price", "Source", "Scraped"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.ProductName, money(rec.Price), rec.Source, rec.ScrapedAt.Format("2006-01-02 15:04")})
	}
	return t.Render()
}

func kpi(label, value string) string {
	return kpiStyle.Render(kpiLabelStyle.Render(label) + "\n" + kpiValueStyle.Render(value))
}

// RenderSummary lays out the dashboard body: KPI boxes, the price histogram and the
// cheapest titles.
func RenderSummary(s models.DashboardSummary) string {
	kpis := lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Total books tracked", fmt.Sprintf("%d", s.TotalTracked)),
		kpi("Average price", money(s.AveragePrice)),
		kpi("Lowest price", money(s.LowestPrice)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		kpis,
		sectionStyle.Render("Price distribution"),
		HistogramChart(s.Histogram),
		sectionStyle.Render("Top 5 cheapest books"),
		cheapestTable(s.Cheapest),
	)
}
