package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

func sampleSummary() models.DashboardSummary {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.DashboardSummary{
		TotalTracked: 42,
		AveragePrice: 35.07,
		LowestPrice:  10.00,
		Histogram: []models.HistogramBin{
			{Lower: 10, Upper: 30, Count: 4},
			{Lower: 30, Upper: 50, Count: 1},
		},
		Cheapest: []models.PriceRecord{
			{ProductName: "Set Me Free", Price: 10, Source: models.SourceBookWorld, ScrapedAt: at},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(sampleSummary())
	require.Contains(t, out, "Total books tracked")
	require.Contains(t, out, "42")
	require.Contains(t, out, "£35.07")
	require.Contains(t, out, "Set Me Free")
	require.Contains(t, out, "2024-05-01 12:00")
}

func TestHistogramChart(t *testing.T) {
	require.Equal(t, "(no prices)", HistogramChart(nil))

	lines := strings.Split(HistogramChart(sampleSummary().Histogram), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, barWidth, strings.Count(lines[0], "█"))
	require.Equal(t, barWidth/4, strings.Count(lines[1], "█"))
}

func TestRenderComparison(t *testing.T) {
	var buf bytes.Buffer
	RenderComparison(&buf, nil)
	require.Contains(t, buf.String(), "No products")

	buf.Reset()
	RenderComparison(&buf, []models.PriceComparison{
		{ProductName: "Sapiens", PrimaryPrice: 54.23, CompetitorPrice: 50, Difference: 4.23},
		{ProductName: "Olio", PrimaryPrice: 23.88, CompetitorPrice: 25, Difference: -1.12},
	})
	out := buf.String()
	require.Contains(t, out, "Sapiens")
	require.Contains(t, out, "+4.23")
	require.Contains(t, out, "-1.12")
	require.Less(t, strings.Index(out, "Sapiens"), strings.Index(out, "Olio"))
}

func TestRenderAnalystReport(t *testing.T) {
	var buf bytes.Buffer
	RenderAnalystReport(&buf, models.AnalystReport{
		AveragePrice: 27.22,
		Inventory:    []models.GroupCount{{Value: "In stock", Count: 5}, {Value: "", Count: 1}},
		MostExpensive: []models.PriceRecord{
			{ProductName: "E", Price: 50, Source: models.SourceBooksToScrape},
		},
	})
	out := buf.String()
	require.Contains(t, out, "Average book price: £27.22")
	require.Contains(t, out, "In stock")
	require.Contains(t, out, "(unknown)")
	require.Contains(t, out, "£50.00")
}

func TestModelUpdate(t *testing.T) {
	calls := 0
	m := NewModel(func(context.Context) (models.DashboardSummary, error) {
		calls++
		return sampleSummary(), nil
	}, time.Minute)
	require.Contains(t, m.View(), "Loading")

	msg := m.fetch()()
	require.Equal(t, 1, calls)

	next, cmd := m.Update(msg)
	require.Nil(t, cmd)
	view := next.View()
	require.Contains(t, view, "£35.07")
	require.Contains(t, view, "last updated")

	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestModelShowsEmptyStore(t *testing.T) {
	m := NewModel(nil, 0)
	next, _ := m.Update(summaryMsg{err: &database.QueryError{Op: "average_price", Kind: database.QueryEmpty}, at: time.Now()})
	require.Contains(t, next.View(), "No price data yet")

	next, _ = next.Update(summaryMsg{err: errors.New("boom"), at: time.Now()})
	require.Contains(t, next.View(), "boom")
}
