package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/config"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

var batchTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func setupStore(t testing.TB) *PriceStore {
	t.Helper()
	store, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func priceRecord(name string, price float64, source string) models.PriceRecord {
	return models.PriceRecord{
		ProductName:  name,
		Price:        price,
		Availability: models.StringPtr("In stock"),
		Source:       source,
		ScrapedAt:    batchTime,
	}
}

func tableExists(t testing.TB, store *PriceStore) bool {
	var n int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='book_prices'`).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestAppendEmptyBatchIsNoop(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	n, err := store.Append(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.False(t, tableExists(t, store))
}

func TestAppendCreatesSchemaAndAccumulates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	batch := []models.PriceRecord{
		priceRecord("Olio", 23.88, models.SourceBooksToScrape),
		priceRecord("Sapiens", 54.23, models.SourceBooksToScrape),
	}
	n, err := store.Append(ctx, batch)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.True(t, tableExists(t, store))

	// same batch again is appended, not upserted
	_, err = store.Append(ctx, batch)
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, count)

	all, err := store.FilterByMaxPrice(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "Olio", all[0].ProductName)
	require.EqualValues(t, 1, all[0].ID)
	require.NotNil(t, all[0].Availability)
	require.Equal(t, "In stock", *all[0].Availability)
	require.True(t, batchTime.Equal(all[0].ScrapedAt), "got %v", all[0].ScrapedAt)
}

func TestAppendNullAvailability(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	r := priceRecord("Olio", 23.88, models.SourceBookWorld)
	r.Availability = nil
	_, err := store.Append(ctx, []models.PriceRecord{r})
	require.NoError(t, err)

	all, err := store.FilterByMaxPrice(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, all[0].Availability)
}

func TestAppendFailureIsIngestionError(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	// A table with an incompatible shape makes the insert fail.
	_, err := store.db.Exec(`CREATE TABLE book_prices (id INTEGER PRIMARY KEY, product_name TEXT NOT NULL)`)
	require.NoError(t, err)

	_, err = store.Append(ctx, []models.PriceRecord{priceRecord("Olio", 1, models.SourceBookWorld)})
	require.Error(t, err)

	var ingestErr *IngestionError
	require.True(t, errors.As(err, &ingestErr))
	require.Equal(t, 1, ingestErr.Rows)
}

func TestAppendRollsBackWholeBatch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	_, err := store.db.Exec(`CREATE TABLE book_prices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_name TEXT,
		price REAL CHECK (price < 50),
		availability TEXT,
		source TEXT,
		scraped_at TIMESTAMP
	)`)
	require.NoError(t, err)

	n, err := store.Append(ctx, []models.PriceRecord{
		priceRecord("Olio", 10, models.SourceBooksToScrape),
		priceRecord("Sapiens", 60, models.SourceBooksToScrape),
	})
	require.Zero(t, n)

	var ingestErr *IngestionError
	require.ErrorAs(t, err, &ingestErr)
	require.Equal(t, 2, ingestErr.Rows)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestResetDropsRows(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, []models.PriceRecord{priceRecord("Olio", 23.88, models.SourceBooksToScrape)})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))
	require.True(t, tableExists(t, store))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", URL: "x"})
	var connErr *StoreConnectionError
	require.True(t, errors.As(err, &connErr))
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	var connErr *StoreConnectionError
	require.True(t, errors.As(err, &connErr))
}

func TestRebind(t *testing.T) {
	pg, err := DialectFor("postgres")
	require.NoError(t, err)
	store := NewPriceStore(nil, pg)
	require.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", store.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite, err := DialectFor("SQLite")
	require.NoError(t, err)
	require.Equal(t, "a = ?", NewPriceStore(nil, lite).rebind("a = ?"))
}

func TestDSNFor(t *testing.T) {
	mysql, _ := DialectFor("mysql")
	require.Equal(t, "u:p@tcp(localhost:3306)/prices?parseTime=true", dsnFor(mysql, "mysql://u:p@tcp(localhost:3306)/prices"))
	require.Equal(t, "u:p@tcp(h)/db?tls=true&parseTime=true", dsnFor(mysql, "u:p@tcp(h)/db?tls=true"))

	lite, _ := DialectFor("sqlite")
	require.Equal(t, ":memory:?_time_format=sqlite", dsnFor(lite, ":memory:"))

	pg, _ := DialectFor("postgres")
	require.Equal(t, "postgres://u:p@h/db", dsnFor(pg, "postgres://u:p@h/db"))
}
