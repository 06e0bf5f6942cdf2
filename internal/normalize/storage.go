package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"serverdb/internal/util"
)

const TBToGB = 1024

var (
	driveGroupPattern = regexp.MustCompile(`(?i)(\d+)x(\d+)(TB|GB)`)
	driveSizePattern  = regexp.MustCompile(`(?i)(\d+)(TB|GB)`)
)

// A matcher reports matched=true when its pattern occurs in the text; total is
// nil when the pattern matched but the amount is unusable.
type storageMatcher func(text string) (total *int, matched bool)

// Tried in order; the first matcher whose pattern occurs decides the total.
var storageMatchers = []storageMatcher{
	sumDriveGroups,
	firstDriveSize,
}

// Storage returns the total capacity in GB described by raw, e.g. "2x4TB 1x2TB"
// is 10240. The raw text is returned unchanged in every case.
func Storage(raw string) (*int, string) {
	text := util.CleanText(raw)
	if text == "" {
		return nil, raw
	}
	for _, match := range storageMatchers {
		if total, matched := match(text); matched {
			return total, raw
		}
	}
	return nil, raw
}

func sumDriveGroups(text string) (*int, bool) {
	groups := driveGroupPattern.FindAllStringSubmatch(text, -1)
	if len(groups) == 0 {
		return nil, false
	}
	total := 0
	for _, g := range groups {
		count, err := strconv.Atoi(g[1])
		if err != nil {
			return nil, true
		}
		size, ok := sizeInGB(g[2], g[3])
		if !ok {
			return nil, true
		}
		if size != 0 && count > math.MaxInt/size {
			return nil, true
		}
		if total > math.MaxInt-count*size {
			return nil, true
		}
		total += count * size
	}
	return &total, true
}

func firstDriveSize(text string) (*int, bool) {
	m := driveSizePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	size, ok := sizeInGB(m[1], m[2])
	if !ok {
		return nil, true
	}
	return &size, true
}

func sizeInGB(amount, unit string) (int, bool) {
	size, err := strconv.Atoi(amount)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(unit, "TB") {
		if size > math.MaxInt/TBToGB {
			return 0, false
		}
		size *= TBToGB
	}
	return size, true
}
