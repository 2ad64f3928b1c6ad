// Package normalize canonicalizes player and team names so lookups are
// insensitive to accents, case and separator punctuation.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = strings.NewReplacer(".", " ", "-", " ")

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
}

// String returns the canonical form of text: compatibility-decomposed,
// combining marks removed, '.' and '-' turned into spaces, lower-cased and
// with whitespace collapsed to single spaces.
func String(text string) string {
	if text == "" {
		return ""
	}
	s := fold(text)
	s = separators.Replace(s)
	// Lower-casing can yield runes that decompose again, so fold twice.
	s = fold(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// Equal reports whether a and b normalize to the same non-empty value.
func Equal(a, b string) bool {
	na := String(a)
	return na != "" && na == String(b)
}

func fold(s string) string {
	out, _, err := transform.String(stripMarks(), s)
	if err != nil {
		return s
	}
	return out
}
