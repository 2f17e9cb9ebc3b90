// etl/dedup.go
package etl

import (
	"sort"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/utils"
)

// Deduplicate keeps at most one record per normalized product key, the cheapest one.
// Records are stable-sorted ascending by price, so equal prices keep batch order, and
// the first record seen for each key wins. Kept records carry the normalized name.
// The input slice is left untouched.
func Deduplicate(records []models.PriceRecord) []models.PriceRecord {
	sorted := make([]models.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]models.PriceRecord, 0, len(sorted))
	for _, record := range sorted {
		key := utils.NormalizeProductKey(record.ProductName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		record.ProductName = key
		out = append(out, record)
	}
	return out
}
