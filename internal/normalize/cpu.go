package normalize

import (
	"regexp"
	"strings"

	"serverdb/internal/util"
)

type cpuRule struct {
	family  string
	pattern *regexp.Regexp
}

// Order is precedence: "Intel Xeon E5" must resolve to "Intel Xeon", not "Xeon E5".
var cpuRules = []cpuRule{
	{family: "intel", pattern: regexp.MustCompile(`(?i)Intel\s+\w+`)},
	{family: "amd", pattern: regexp.MustCompile(`(?i)AMD\s+\w+`)},
	{family: "xeon", pattern: regexp.MustCompile(`(?i)Xeon\s+\w+`)},
	{family: "core", pattern: regexp.MustCompile(`(?i)Core\s+i\d+`)},
	{family: "ryzen", pattern: regexp.MustCompile(`(?i)Ryzen\s+\w+`)},
}

// CPU extracts the vendor/family token from a server model name.
func CPU(model string) *string {
	cpu, _ := matchCPU(model)
	return cpu
}

func matchCPU(model string) (*string, string) {
	text := util.CleanText(model)
	if text == "" {
		return nil, ""
	}
	for _, rule := range cpuRules {
		if found := rule.pattern.FindString(text); found != "" {
			return util.StringPtr(strings.TrimSpace(found)), rule.family
		}
	}
	return nil, ""
}
