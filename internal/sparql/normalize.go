package sparql

import (
	"regexp"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize collapses all whitespace runs to single spaces and trims the
// result. Two queries that differ only in layout normalize to the same text,
// which is what the query cache keys on.
func Normalize(query string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(query, " "))
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// QuoteRegex escapes s for use as a case-insensitive regex inside a SPARQL
// string literal.
func QuoteRegex(s string) string {
	return literalEscaper.Replace(regexp.QuoteMeta(s))
}
