// Package normalize turns free-text server listing cells into typed values.
// Every parser is pure; a value that cannot be extracted is returned as nil.
package normalize

import (
	"regexp"
	"strconv"

	"serverdb/internal/util"
)

var ramPattern = regexp.MustCompile(`(?i)(\d+)\s*GB`)

// RAM returns the first "<n>GB" amount in raw. RAM is always listed in GB.
func RAM(raw string) *int {
	text := util.CleanText(raw)
	if text == "" {
		return nil
	}
	m := ramPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	gb, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &gb
}
