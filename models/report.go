// models/report.go
package models

// Stats is the KPI payload served on /stats.
type Stats struct {
	AveragePrice float64 `json:"average_price"`
	LowestPrice  float64 `json:"lowest_price"`
	HighestPrice float64 `json:"highest_price"`
}

// Extremes holds the lowest and highest price in the table.
type Extremes struct {
	Lowest  float64 `json:"lowest_price"`
	Highest float64 `json:"highest_price"`
}

// GroupCount is one row of a GROUP BY count.
type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// PriceComparison pairs the price of one product in two sources at the same batch.
type PriceComparison struct {
	ProductName     string  `json:"product_name"`
	PrimaryPrice    float64 `json:"primary_price"`
	CompetitorPrice float64 `json:"competitor_price"`
	Difference      float64 `json:"price_difference"` // PrimaryPrice - CompetitorPrice
}

// HistogramBin counts prices falling in [Lower, Upper). The last bin is closed.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// DashboardSummary is everything the terminal dashboard renders.
type DashboardSummary struct {
	TotalTracked int64          `json:"total_tracked"`
	AveragePrice float64        `json:"average_price"`
	LowestPrice  float64        `json:"lowest_price"`
	Histogram    []HistogramBin `json:"histogram"`
	Cheapest     []PriceRecord  `json:"cheapest"`
}

// AnalystReport mirrors the three standing analyst questions:
// average price, inventory status counts and the most expensive titles.
type AnalystReport struct {
	AveragePrice  float64       `json:"average_price"`
	Inventory     []GroupCount  `json:"inventory"`
	MostExpensive []PriceRecord `json:"most_expensive"`
}

// PricesResponse is the payload served on /prices.
type PricesResponse struct {
	Count        int           `json:"count"`
	LimitApplied *float64      `json:"limit_applied"`
	Data         []PriceRecord `json:"data"`
}
