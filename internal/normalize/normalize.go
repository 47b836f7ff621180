// Package normalize provides the text canonicalization rules applied to
// tenant and student records before any uniqueness check or persistence.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DisplayName strips diacritics, uppercases, and collapses surrounding and
// repeated inner whitespace. "  José  Ñuñez " becomes "JOSE NUNEZ".
func DisplayName(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Malformed input passes through un-stripped; casing still applies.
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}

// Slug lowercases and trims a URL slug. It does not invent separators;
// slugs are operator-supplied and validated against SlugValid.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SlugValid reports whether a normalized slug contains only lowercase
// letters, digits, and single hyphens, and is non-empty.
func SlugValid(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
