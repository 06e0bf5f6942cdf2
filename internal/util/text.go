package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CleanText folds a spreadsheet cell into the form the field parsers match
// against: NFKC (non-breaking spaces, full-width digits), no control
// characters, trimmed.
func CleanText(input string) string {
	s := norm.NFKC.String(input)
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func NormalizeHeader(input string) string {
	return strings.ToLower(NormalizeSpaces(CleanText(input)))
}
