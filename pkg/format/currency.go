// Package format renders numeric results for display using Indian
// conventions: rupee amounts group the last three digits, then every two
// digits to the left (e.g., 1200000 -> "12,00,000").
package format

import (
	"math"
	"strconv"
	"strings"
)

// Currency returns a whole-rupee string with Indian digit grouping and no
// currency symbol (e.g., "12,00,000", "-1,00,000").
func Currency(amount float64) string {
	rounded := int64(math.Round(math.Abs(amount)))
	formatted := groupIndian(strconv.FormatInt(rounded, 10))
	if math.Round(amount) < 0 {
		return "-" + formatted
	}
	return formatted
}

// CurrencyWithSymbol returns a currency string with a rupee sign and Indian
// digit grouping (e.g., "₹12,00,000").
func CurrencyWithSymbol(amount float64) string {
	if math.Round(amount) < 0 {
		return "-₹" + Currency(math.Abs(amount))
	}
	return "₹" + Currency(amount)
}

// Percent returns the value with a "%" suffix, trimming trailing zeros
// (e.g., "12%", "12.5%").
func Percent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

// groupIndian inserts separators into a plain digit string: the rightmost
// group has three digits and every group to its left has two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var builder strings.Builder
	n := len(digits)
	for i := 0; i < n; i++ {
		remaining := n - i
		if i > 0 && (remaining == 3 || (remaining > 3 && remaining%2 == 1)) {
			builder.WriteByte(',')
		}
		builder.WriteByte(digits[i])
	}
	return builder.String()
}
