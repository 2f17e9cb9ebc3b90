package etl

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/utils"
)

func record(name string, price float64) models.PriceRecord {
	return models.PriceRecord{ProductName: name, Price: price, Source: models.SourceBooksToScrape}
}

func TestDeduplicateKeepsCheapest(t *testing.T) {
	in := []models.PriceRecord{
		record("The Requiem Red", 22.65),
		record("the requiem red", 22.00),
		record("Olio", 23.88),
		record(" OLIO ", 25.00),
	}

	out := Deduplicate(in)

	expected := []models.PriceRecord{
		record("The Requiem Red", 22.00),
		record("Olio", 23.88),
	}
	if diff := cmp.Diff(expected, out); diff != "" {
		t.Fatalf("unexpected dedup output (-want +got):\n%s", diff)
	}
	// input untouched
	require.Equal(t, "the requiem red", in[1].ProductName)
}

func TestDeduplicateTiesKeepBatchOrder(t *testing.T) {
	first := record("Sharp Objects", 10)
	first.Link = "first"
	second := record("SHARP OBJECTS", 10)
	second.Link = "second"

	out := Deduplicate([]models.PriceRecord{first, second})
	require.Len(t, out, 1)
	require.Equal(t, "first", out[0].Link)
}

func TestDeduplicateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"olio", "OLIO", "Soumission", "soumission ", "Sapiens", "the black maria"}

	for round := 0; round < 50; round++ {
		var in []models.PriceRecord
		n := rng.Intn(20)
		for i := 0; i < n; i++ {
			in = append(in, record(names[rng.Intn(len(names))], float64(rng.Intn(5000))/100))
		}

		out := Deduplicate(in)
		require.LessOrEqual(t, len(out), len(in))

		minByKey := map[string]float64{}
		for _, r := range in {
			key := utils.NormalizeProductKey(r.ProductName)
			if current, ok := minByKey[key]; !ok || r.Price < current {
				minByKey[key] = r.Price
			}
		}
		require.Len(t, out, len(minByKey))
		for _, r := range out {
			require.Equal(t, minByKey[r.ProductName], r.Price, "key %q", r.ProductName)
		}

		if diff := cmp.Diff(out, Deduplicate(out)); diff != "" {
			t.Fatalf("dedup is not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	require.Empty(t, Deduplicate(nil))
}

func TestCleanFeedScenario(t *testing.T) {
	scrapedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	listings := []models.RawListing{
		{BookName: "the requiem red", RawPrice: "$22.65"},
		{BookName: "THE REQUIEM RED", RawPrice: "USD 22.00"},
		{BookName: "Olio", RawPrice: "23.88 GBP"},
	}

	out := CleanFeed(listings, models.SourceBookWorld, scrapedAt)

	require.Len(t, out, 2)
	require.Equal(t, "The Requiem Red", out[0].ProductName)
	require.Equal(t, 22.00, out[0].Price)
	require.Equal(t, "Olio", out[1].ProductName)
	require.Equal(t, 23.88, out[1].Price)
	for _, r := range out {
		require.Equal(t, models.SourceBookWorld, r.Source)
		require.Equal(t, scrapedAt, r.ScrapedAt)
	}
}
