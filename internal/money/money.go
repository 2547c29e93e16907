// Package money formats dong amounts for display.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is shown in place of an amount that is not a finite number.
const Unknown = "không xác định"

var printer = message.NewPrinter(language.Vietnamese)

// Round rounds v half away from zero to whole dong. NaN rounds to 0 and values
// beyond the int64 range saturate.
func Round(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// VND renders v as "3.191.600 ₫".
func VND(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown
	}
	return printer.Sprintf("%d ₫", Round(v))
}

// VNDPlain renders v as "3.191.600 VND", for fonts without the dong sign.
func VNDPlain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return printer.Sprintf("%d VND", Round(v))
}
