package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for numeric token classification
var (
	// "3.6%" or "3,6%" — a fat-content token
	percentPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)%$`)

	// bare decimal number, either separator
	numberPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)$`)

	// number fused with a unit suffix, e.g. "1l", "400gr", "1л"
	fusedSizePattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(\p{L}+)$`)
)

// tokenize splits a raw product name on whitespace and strips edge
// punctuation from each token, keeping `%` and in-number separators intact.
func tokenize(raw string) []string {
	fields := strings.Fields(raw)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '%'
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// foldToken canonicalizes a token for table lookup: lowercase, then NFD
// decomposition with combining marks removed (drops Latin accents; also
// folds й→и and ё→е, which the lookup tables are keyed for).
func foldToken(s string) string {
	s = strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return s
}

// parseDecimal parses a number accepting both `.` and `,` as the decimal
// separator.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// formatDecimal renders a number without trailing zeros ("1", "3.6").
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// isAlphabetic reports whether the token consists of letters only.
func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// appendUnique appends s to list unless already present.
func appendUnique(list *[]string, s string) {
	for _, existing := range *list {
		if existing == s {
			return
		}
	}
	*list = append(*list, s)
}
