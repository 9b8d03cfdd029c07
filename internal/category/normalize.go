// Package category canonicalizes free-text category labels so that
// transactions and budgets written with different casing or stray
// whitespace group together.
package category

import "strings"

// Normalize returns the canonical lookup key for a category label:
// surrounding whitespace trimmed, everything lowercased. Idempotent.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
