// scraper/errors.go
package scraper

import "fmt"

// ExtractionError is a network or parse failure while reading a source.
// No records are returned alongside it.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract prices from %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
