// database/price_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

const insertPriceSQL = `
	INSERT INTO book_prices (
		product_name, price, availability, source, scraped_at
	) VALUES (?, ?, ?, ?, ?)`

// PriceStore is the append-only book_prices table: the loader writes to it and
// the report queries read from it.
type PriceStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewPriceStore wraps an already opened database.
func NewPriceStore(db *sql.DB, dialect Dialect) *PriceStore {
	return &PriceStore{db: db, dialect: dialect}
}

// Dialect returns the dialect the store was opened with.
func (s *PriceStore) Dialect() Dialect { return s.dialect }

// Close closes the connection pool.
func (s *PriceStore) Close() {
	if s.db != nil {
		s.db.Close()
		log.Println("Database: connection closed.")
	}
}

// Ping verifies the store is reachable.
func (s *PriceStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &StoreConnectionError{Driver: s.dialect.Name, Err: err}
	}
	return nil
}

// rebind rewrites ? placeholders into $1, $2... for dialects that need it.
func (s *PriceStore) rebind(query string) string {
	if !s.dialect.NumberedParams {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureSchema creates book_prices if it does not exist yet.
func (s *PriceStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable); err != nil {
		if isConnectionError(err) {
			return &StoreConnectionError{Driver: s.dialect.Name, Err: err}
		}
		return fmt.Errorf("failed to create book_prices table: %w", err)
	}
	return nil
}

// Append writes every record as a new row. Earlier rows are never touched, so
// repeated runs build up price history. An empty batch does nothing, not even
// create the table. The whole batch is one transaction; on failure nothing is
// committed and the error is returned without retrying.
func (s *PriceStore) Append(ctx context.Context, records []models.PriceRecord) (int, error) {
	if len(records) == 0 {
		log.Println("Database: no price records provided to save.")
		return 0, nil
	}

	if err := s.EnsureSchema(ctx); err != nil {
		return 0, &IngestionError{Rows: len(records), Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.ingestErr(len(records), fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(insertPriceSQL))
	if err != nil {
		return 0, s.ingestErr(len(records), fmt.Errorf("failed to prepare price insert statement: %w", err))
	}
	defer stmt.Close()

	for _, record := range records {
		var availability sql.NullString
		if record.Availability != nil {
			availability = sql.NullString{String: *record.Availability, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			record.ProductName, record.Price, availability,
			record.Source, record.ScrapedAt.UTC(),
		)
		if err != nil {
			log.Printf("ERROR Database: saving price record %+v: %v", record, err)
			return 0, s.ingestErr(len(records), fmt.Errorf("failed to insert price for '%s' (%s): %w", record.ProductName, record.Source, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, s.ingestErr(len(records), fmt.Errorf("failed to commit price batch: %w", err))
	}

	log.Printf("Database: loaded %d rows into book_prices.", len(records))
	return len(records), nil
}

func (s *PriceStore) ingestErr(rows int, err error) error {
	if isConnectionError(err) {
		err = &StoreConnectionError{Driver: s.dialect.Name, Err: err}
	}
	return &IngestionError{Rows: rows, Err: err}
}

// Reset irreversibly drops book_prices and creates it again, empty.
func (s *PriceStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS book_prices"); err != nil {
		if isConnectionError(err) {
			return &StoreConnectionError{Driver: s.dialect.Name, Err: err}
		}
		return fmt.Errorf("failed to drop book_prices table: %w", err)
	}
	log.Println("Database: old table 'book_prices' deleted.")

	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	log.Println("Database: table 'book_prices' recreated.")
	return nil
}
