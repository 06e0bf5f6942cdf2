package normalize

import (
	"regexp"
	"strings"

	"serverdb/internal/util"
)

// City letters, spaces and dots, then a facility code glued to the end:
// "AmsterdamAMS-01", "Washington D.C.WDC-01".
var locationPattern = regexp.MustCompile(`^([A-Za-z\s.]+?)([A-Z]{2,4}-\d+)$`)

func Location(raw string) (city, code *string) {
	text := util.CleanText(raw)
	if text == "" {
		return nil, nil
	}
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		return util.StringPtr(strings.TrimSpace(m[1])), util.StringPtr(m[2])
	}
	return util.StringPtr(text), nil
}
