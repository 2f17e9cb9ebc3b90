// utils/products.go
package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeProductKey trims surrounding whitespace and title-cases a product name,
// so "the requiem red" and "THE REQUIEM RED" both become "The Requiem Red".
func NormalizeProductKey(name string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
