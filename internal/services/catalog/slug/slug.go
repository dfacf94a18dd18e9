// Package slug derives URL-safe identifiers from free text.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases s, turns runs of whitespace, underscores and dashes into a
// single dash, drops anything outside [a-z0-9-] and trims edge dashes.
// Make is idempotent.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingDash = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
