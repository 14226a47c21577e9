package utils

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimal places.
// Example: 12.3456 returns "12.35"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseLenientDecimal converts a loosely typed JSON value into a decimal.
// Numbers and numeric strings are accepted, anything else yields zero and false.
func ParseLenientDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		return decimal.NewFromFloat(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	default:
		return decimal.Zero, false
	}
}

// LenientString converts a loosely typed JSON value into a trimmed string.
func LenientString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return decimal.NewFromFloat(val).String()
	default:
		return ""
	}
}
