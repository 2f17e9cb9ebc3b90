// database/report_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

const selectRecordColumns = `id, product_name, price, availability, source, scraped_at`

// Columns that GroupCounts accepts. Anything else is rejected before it reaches SQL.
var groupableColumns = map[string]bool{
	"product_name": true,
	"availability": true,
	"source":       true,
	"scraped_at":   true,
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.PriceRecord, error) {
	var r models.PriceRecord
	var name, availability, source sql.NullString
	var price sql.NullFloat64
	var scrapedAt sql.NullTime

	if err := row.Scan(&r.ID, &name, &price, &availability, &source, &scrapedAt); err != nil {
		return r, err
	}
	r.ProductName = name.String
	r.Price = price.Float64
	r.Source = source.String
	if availability.Valid {
		r.Availability = &availability.String
	}
	if scrapedAt.Valid {
		r.ScrapedAt = scrapedAt.Time.UTC()
	}
	return r, nil
}

func (s *PriceStore) queryRecords(ctx context.Context, op, query string, args ...any) ([]models.PriceRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, s.queryErr(op, err)
	}
	defer rows.Close()

	records := []models.PriceRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, s.queryErr(op, fmt.Errorf("failed to scan book_prices row: %w", err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr(op, fmt.Errorf("error iterating book_prices rows: %w", err))
	}
	return records, nil
}

// Count returns the number of rows in book_prices.
func (s *PriceStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM book_prices").Scan(&n); err != nil {
		return 0, s.queryErr("count", err)
	}
	return n, nil
}

// AveragePrice is the arithmetic mean of every price in the table.
func (s *PriceStore) AveragePrice(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT AVG(price), COUNT(*) FROM book_prices").Scan(&avg, &n)
	if err != nil {
		return 0, s.queryErr("average_price", err)
	}
	if n == 0 || !avg.Valid {
		return 0, &QueryError{Op: "average_price", Kind: QueryEmpty, Err: errEmptyTable}
	}
	return avg.Float64, nil
}

// Extremes returns the lowest and highest price in the table.
func (s *PriceStore) Extremes(ctx context.Context) (models.Extremes, error) {
	var lowest, highest sql.NullFloat64
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT MIN(price), MAX(price), COUNT(*) FROM book_prices").Scan(&lowest, &highest, &n)
	if err != nil {
		return models.Extremes{}, s.queryErr("extremes", err)
	}
	if n == 0 || !lowest.Valid || !highest.Valid {
		return models.Extremes{}, &QueryError{Op: "extremes", Kind: QueryEmpty, Err: errEmptyTable}
	}
	return models.Extremes{Lowest: lowest.Float64, Highest: highest.Float64}, nil
}

// TopNByPrice returns up to n records ranked by price. Equal prices keep insertion order.
func (s *PriceStore) TopNByPrice(ctx context.Context, n int, descending bool) ([]models.PriceRecord, error) {
	if n <= 0 {
		return nil, &QueryError{Op: "top_n_by_price", Kind: QueryInvalid, Err: fmt.Errorf("n must be positive, got %d", n)}
	}
	order := "ASC"
	if descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM book_prices ORDER BY price %s, id ASC LIMIT ?`, selectRecordColumns, order)
	return s.queryRecords(ctx, "top_n_by_price", query, n)
}

// GroupCounts counts rows per distinct value of column. NULLs are reported as "".
func (s *PriceStore) GroupCounts(ctx context.Context, column string) ([]models.GroupCount, error) {
	if !groupableColumns[column] {
		return nil, &QueryError{Op: "group_counts", Kind: QueryInvalid, Err: fmt.Errorf("unknown column %q", column)}
	}

	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM book_prices GROUP BY %[1]s ORDER BY COUNT(*) DESC, %[1]s ASC`, column)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.queryErr("group_counts", err)
	}
	defer rows.Close()

	counts := []models.GroupCount{}
	for rows.Next() {
		var value sql.NullString
		var gc models.GroupCount
		if err := rows.Scan(&value, &gc.Count); err != nil {
			return nil, s.queryErr("group_counts", fmt.Errorf("failed to scan group row: %w", err))
		}
		gc.Value = value.String
		counts = append(counts, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr("group_counts", err)
	}
	return counts, nil
}

// CrossSourceComparison joins the table to itself on product name and batch timestamp,
// pairing primary and competitor prices. Rows are ordered by difference, largest first.
func (s *PriceStore) CrossSourceComparison(ctx context.Context, primary, competitor string) ([]models.PriceComparison, error) {
	if primary == "" || competitor == "" || primary == competitor {
		return nil, &QueryError{Op: "cross_source_comparison", Kind: QueryInvalid,
			Err: fmt.Errorf("need two different sources, got %q and %q", primary, competitor)}
	}

	query := `
		SELECT t1.product_name, t1.price, t2.price, (t1.price - t2.price) AS price_difference
		FROM book_prices t1
		JOIN book_prices t2
		  ON t1.product_name = t2.product_name
		 AND t1.scraped_at = t2.scraped_at
		WHERE t1.source = ?
		  AND t2.source = ?
		ORDER BY price_difference DESC, t1.product_name ASC, t1.id ASC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), primary, competitor)
	if err != nil {
		return nil, s.queryErr("cross_source_comparison", err)
	}
	defer rows.Close()

	comparisons := []models.PriceComparison{}
	for rows.Next() {
		var c models.PriceComparison
		if err := rows.Scan(&c.ProductName, &c.PrimaryPrice, &c.CompetitorPrice, &c.Difference); err != nil {
			return nil, s.queryErr("cross_source_comparison", fmt.Errorf("failed to scan comparison row: %w", err))
		}
		comparisons = append(comparisons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr("cross_source_comparison", err)
	}
	return comparisons, nil
}

// FilterByMaxPrice returns rows with price <= threshold in insertion order.
// A nil threshold returns every row.
func (s *PriceStore) FilterByMaxPrice(ctx context.Context, threshold *float64) ([]models.PriceRecord, error) {
	if threshold == nil {
		return s.queryRecords(ctx, "filter_by_max_price",
			fmt.Sprintf(`SELECT %s FROM book_prices ORDER BY id ASC`, selectRecordColumns))
	}
	return s.queryRecords(ctx, "filter_by_max_price",
		fmt.Sprintf(`SELECT %s FROM book_prices WHERE price <= ? ORDER BY id ASC`, selectRecordColumns),
		*threshold)
}

// PriceSamples returns every price in insertion order, for distributions.
func (s *PriceStore) PriceSamples(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT price FROM book_prices ORDER BY id ASC")
	if err != nil {
		return nil, s.queryErr("price_samples", err)
	}
	defer rows.Close()

	prices := []float64{}
	for rows.Next() {
		var p sql.NullFloat64
		if err := rows.Scan(&p); err != nil {
			return nil, s.queryErr("price_samples", err)
		}
		prices = append(prices, p.Float64)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryErr("price_samples", err)
	}
	return prices, nil
}

// ServerVersion asks the store to identify itself.
func (s *PriceStore) ServerVersion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var version string
	if err := s.db.QueryRowContext(ctx, s.dialect.VersionQuery).Scan(&version); err != nil {
		return "", s.queryErr("server_version", err)
	}
	return version, nil
}
