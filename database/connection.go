// database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/config"
	_ "github.com/go-sql-driver/mysql" // MySQL / MariaDB driver
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver, registered as "pgx"
	_ "modernc.org/sqlite"             // SQLite driver, registered as "sqlite"
)

// Dialect holds what differs between the supported stores.
type Dialect struct {
	Name         string // "sqlite", "mysql" or "postgres"
	DriverName   string // database/sql driver name
	CreateTable  string
	VersionQuery string
	// Postgres uses $1, $2... instead of ?.
	NumberedParams bool
}

var dialects = map[string]Dialect{
	"sqlite": {
		Name:       "sqlite",
		DriverName: "sqlite",
		CreateTable: `
			CREATE TABLE IF NOT EXISTS book_prices (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_name TEXT,
				price REAL,
				availability TEXT,
				source TEXT,
				scraped_at TIMESTAMP
			)`,
		VersionQuery: "SELECT 'SQLite ' || sqlite_version()",
	},
	"mysql": {
		Name:       "mysql",
		DriverName: "mysql",
		CreateTable: `
			CREATE TABLE IF NOT EXISTS book_prices (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				product_name VARCHAR(512),
				price DECIMAL(12,2),
				availability VARCHAR(255) NULL,
				source VARCHAR(64),
				scraped_at DATETIME
			)`,
		VersionQuery: "SELECT CONCAT('MySQL ', VERSION())",
	},
	"postgres": {
		Name:       "postgres",
		DriverName: "pgx",
		CreateTable: `
			CREATE TABLE IF NOT EXISTS book_prices (
				id BIGSERIAL PRIMARY KEY,
				product_name TEXT,
				price NUMERIC(12,2),
				availability TEXT,
				source TEXT,
				scraped_at TIMESTAMPTZ
			)`,
		VersionQuery:   "SELECT version()",
		NumberedParams: true,
	},
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver %q (use sqlite, mysql or postgres)", driver)
	}
	return d, nil
}

// dsnFor adapts the configured URL to what the driver expects.
func dsnFor(d Dialect, url string) string {
	if d.Name == "sqlite" && !strings.Contains(url, "_time_format=") {
		// Store timestamps in a layout the driver parses back into time.Time.
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "_time_format=sqlite"
	}
	if d.Name == "mysql" {
		url = strings.TrimPrefix(url, "mysql://")
		if !strings.Contains(url, "parseTime=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "parseTime=true"
		}
	}
	return url
}

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*PriceStore, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, &StoreConnectionError{Driver: cfg.Driver, Err: err}
	}
	if cfg.URL == "" {
		return nil, &StoreConnectionError{Driver: dialect.Name, Err: fmt.Errorf("database URL is not configured")}
	}

	db, err := sql.Open(dialect.DriverName, dsnFor(dialect, cfg.URL))
	if err != nil {
		return nil, &StoreConnectionError{Driver: dialect.Name, Err: fmt.Errorf("failed to open database connection: %w", err)}
	}

	// Configure connection pool settings
	if dialect.Name == "sqlite" {
		// One writer; also keeps a :memory: database on a single connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, &StoreConnectionError{Driver: dialect.Name, Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	log.Printf("Database: connected to %s store", dialect.Name)
	return NewPriceStore(db, dialect), nil
}
