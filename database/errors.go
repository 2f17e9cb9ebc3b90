// database/errors.go
package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

// StoreConnectionError means the price store could not be reached or is misconfigured.
// It is fatal to the current run.
type StoreConnectionError struct {
	Driver string
	Err    error
}

func (e *StoreConnectionError) Error() string {
	return fmt.Sprintf("price store (%s) unavailable: %v", e.Driver, e.Err)
}

func (e *StoreConnectionError) Unwrap() error { return e.Err }

// IngestionError means a batch could not be appended. Nothing from the batch was committed.
type IngestionError struct {
	Rows int
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to ingest batch of %d rows: %v", e.Rows, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

type QueryErrorKind int

const (
	// QueryFailed covers SQL errors, including a table that was never created.
	QueryFailed QueryErrorKind = iota
	// QueryEmpty is returned by aggregates over an empty table.
	QueryEmpty
	// QueryInvalid is returned for bad arguments such as an unknown column.
	QueryInvalid
)

func (k QueryErrorKind) String() string {
	switch k {
	case QueryEmpty:
		return "empty"
	case QueryInvalid:
		return "invalid"
	default:
		return "failed"
	}
}

// QueryError is the structured error of the read-only query layer.
type QueryError struct {
	Op   string
	Kind QueryErrorKind
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s query: %v", e.Op, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

var errEmptyTable = errors.New("no price rows in table")

// isConnectionError reports whether err came from the transport rather than the query.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone)
}

// queryErr classifies a read failure for op.
func (s *PriceStore) queryErr(op string, err error) error {
	if isConnectionError(err) {
		return &StoreConnectionError{Driver: s.dialect.Name, Err: err}
	}
	return &QueryError{Op: op, Kind: QueryFailed, Err: err}
}
