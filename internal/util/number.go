package util

import (
	"regexp"
	"strings"
)

var numericRun = regexp.MustCompile(`\d[\d.,]*\d|\d`)

// NormalizeDecimalSeparators rewrites every digit run in input so that '.' is
// the only decimal separator. A comma is decimal only when it is the last
// separator of the run and is followed by one or two digits; in that case dots
// before it are thousands separators. All other commas are dropped.
func NormalizeDecimalSeparators(input string) string {
	return numericRun.ReplaceAllStringFunc(input, normalizeNumericToken)
}

func normalizeNumericToken(token string) string {
	last := strings.LastIndexAny(token, ".,")
	if last < 0 {
		return token
	}
	if token[last] == ',' {
		if tail := len(token) - last - 1; tail == 1 || tail == 2 {
			head := strings.NewReplacer(".", "", ",", "").Replace(token[:last])
			return head + "." + token[last+1:]
		}
	}
	return strings.ReplaceAll(token, ",", "")
}
