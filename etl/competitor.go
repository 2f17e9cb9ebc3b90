// etl/competitor.go
package etl

import (
	"math"
	"math/rand"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

const (
	minPriceFactor = 0.90
	maxPriceFactor = 1.10
)

// Synthesizer simulates a competitor feed from the primary one. It is a simulation,
// not a scrape: every call draws fresh prices.
type Synthesizer struct {
	rng    *rand.Rand
	source string
}

// NewSynthesizer returns a Synthesizer tagging its output with source.
// rng may be nil, in which case the global source is used.
func NewSynthesizer(rng *rand.Rand, source string) *Synthesizer {
	if source == "" {
		source = models.SourceBookWorld
	}
	return &Synthesizer{rng: rng, source: source}
}

func (s *Synthesizer) factor() float64 {
	var f float64
	if s.rng != nil {
		f = s.rng.Float64()
	} else {
		f = rand.Float64()
	}
	return minPriceFactor + f*(maxPriceFactor-minPriceFactor)
}

// Synthesize copies every record, swaps in the competitor source tag and multiplies
// each price by an independent factor drawn from [0.90, 1.10], rounded to 2 decimals.
func (s *Synthesizer) Synthesize(records []models.PriceRecord) []models.PriceRecord {
	out := make([]models.PriceRecord, len(records))
	for i, record := range records {
		record.ID = 0
		record.Source = s.source
		record.Price = perturb(record.Price, s.factor())
		out[i] = record
	}
	return out
}

// perturb applies factor and rounds to cents, clamping so rounding never pushes the
// result outside [0.9*price, 1.1*price]. Sub-cent prices whose interval holds no
// whole cent are returned unrounded.
func perturb(price, factor float64) float64 {
	raw := price * factor
	next := math.Round(raw*100) / 100
	low, high := price*minPriceFactor, price*maxPriceFactor
	if next < low {
		next = math.Ceil(low*100) / 100
	}
	if next > high {
		next = math.Floor(high*100) / 100
	}
	if next < low || next > high {
		return raw
	}
	return next
}
