// services/report_service.go
package services

import (
	"context"
	"math"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

const (
	histogramBins   = 20
	cheapestShown   = 5
	expensiveShown  = 3
	inventoryColumn = "availability"
)

// ReportService builds the summaries shared by the API, the dashboard and the CLI reports.
type ReportService struct {
	store *database.PriceStore
}

func NewReportService(store *database.PriceStore) *ReportService {
	return &ReportService{store: store}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *ReportService) Stats(ctx context.Context) (models.Stats, error) {
	avg, err := s.store.AveragePrice(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	extremes, err := s.store.Extremes(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return models.Stats{
		AveragePrice: round2(avg),
		LowestPrice:  extremes.Lowest,
		HighestPrice: extremes.Highest,
	}, nil
}

// Prices lists rows priced at or below maxPrice, or every row when maxPrice is nil.
func (s *ReportService) Prices(ctx context.Context, maxPrice *float64) (models.PricesResponse, error) {
	records, err := s.store.FilterByMaxPrice(ctx, maxPrice)
	if err != nil {
		return models.PricesResponse{}, err
	}
	return models.PricesResponse{Count: len(records), LimitApplied: maxPrice, Data: records}, nil
}

func (s *ReportService) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary

	stats, err := s.Stats(ctx)
	if err != nil {
		return out, err
	}
	if out.TotalTracked, err = s.store.Count(ctx); err != nil {
		return out, err
	}
	samples, err := s.store.PriceSamples(ctx)
	if err != nil {
		return out, err
	}
	if out.Cheapest, err = s.store.TopNByPrice(ctx, cheapestShown, false); err != nil {
		return out, err
	}

	out.AveragePrice = stats.AveragePrice
	out.LowestPrice = stats.LowestPrice
	out.Histogram = Histogram(samples, histogramBins)
	return out, nil
}

func (s *ReportService) AnalystReport(ctx context.Context) (models.AnalystReport, error) {
	var out models.AnalystReport

	avg, err := s.store.AveragePrice(ctx)
	if err != nil {
		return out, err
	}
	if out.Inventory, err = s.store.GroupCounts(ctx, inventoryColumn); err != nil {
		return out, err
	}
	if out.MostExpensive, err = s.store.TopNByPrice(ctx, expensiveShown, true); err != nil {
		return out, err
	}
	out.AveragePrice = round2(avg)
	return out, nil
}

// Comparison returns the largest primary-minus-competitor differences first.
// limit <= 0 returns every pair.
func (s *ReportService) Comparison(ctx context.Context, limit int) ([]models.PriceComparison, error) {
	rows, err := s.store.CrossSourceComparison(ctx, models.SourceBooksToScrape, models.SourceBookWorld)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Histogram spreads samples over equal-width bins between their min and max.
// The last bin includes the max. Identical samples collapse into one bin.
func Histogram(samples []float64, bins int) []models.HistogramBin {
	if len(samples) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := samples[0], samples[0]
	for _, p := range samples[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if lo == hi {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(samples)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, p := range samples {
		i := int((p - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Top ranks rows by price. n must be positive.
func (s *ReportService) Top(ctx context.Context, n int, descending bool) ([]models.PriceRecord, error) {
	return s.store.TopNByPrice(ctx, n, descending)
}

func (s *ReportService) Groups(ctx context.Context, column string) ([]models.GroupCount, error) {
	return s.store.GroupCounts(ctx, column)
}

// Ping reports whether the store is reachable.
func (s *ReportService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
