// ABOUTME: Whitespace normalization for raw extracted document text
// ABOUTME: Collapses runs of whitespace and newlines into single spaces
package ingest

import "strings"

// Normalize collapses every run of whitespace (including newlines) into a
// single space and trims the result. It is pure and idempotent.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
