package valueobject

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber formats num with a fixed number of decimals and comma thousands separators.
// Halves round away from zero.
//
// Parameters:
//   - num: the value to format
//   - decimals: digits after the decimal point (negative values are treated as 0)
//
// Returns:
//   - string: formatted number (e.g., "1,234.57")
func FormatNumber(num float64, decimals int) string {
	switch {
	case math.IsNaN(num):
		return "NaN"
	case math.IsInf(num, 1):
		return "∞"
	case math.IsInf(num, -1):
		return "-∞"
	}
	if decimals < 0 {
		decimals = 0
	}
	sign, digits := splitSign(decimal.NewFromFloat(num).StringFixed(int32(decimals)))
	return sign + groupThousands(digits)
}

func splitSign(s string) (string, string) {
	if strings.HasPrefix(s, "-") {
		return "-", s[1:]
	}
	return "", s
}

// groupThousands inserts commas into the integer part of an unsigned decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
