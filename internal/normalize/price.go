package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"serverdb/internal/util"
)

var (
	pricePadding  = regexp.MustCompile(`[€$£¥\s]`)
	decimalNumber = regexp.MustCompile(`\d+\.?\d*`)
)

// Price extracts the first decimal amount from raw after dropping currency
// symbols and whitespace. See util.NormalizeDecimalSeparators for how commas
// are read. The raw text is returned unchanged in every case.
func Price(raw string) (*float64, string) {
	text := util.CleanText(raw)
	if text == "" {
		return nil, raw
	}
	cleaned := util.NormalizeDecimalSeparators(pricePadding.ReplaceAllString(text, ""))
	token := strings.TrimSuffix(decimalNumber.FindString(cleaned), ".")
	if token == "" {
		return nil, raw
	}
	amount, err := decimal.NewFromString(token)
	if err != nil {
		return nil, raw
	}
	value, _ := amount.Float64()
	return &value, raw
}
