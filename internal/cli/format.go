// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var currency = money.USD

// SetCurrency sets the ISO-4217 code used by the money formatters. Unknown
// codes leave the current setting unchanged and report false.
func SetCurrency(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(code) == nil {
		return false
	}
	currency = code
	return true
}

// Currency returns the active currency code.
func Currency() string {
	return currency
}

// ToMoney converts a decimal amount into minor units of the active currency.
func ToMoney(d decimal.Decimal) *money.Money {
	c := money.GetCurrency(currency)
	minor := d.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, currency)
}

// FormatMoney formats an amount in the active currency.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	return ToMoney(d).Display()
}

// FormatSignedMoney formats an amount with an explicit sign.
// e.g., 30 -> "+$30.00", -15.2 -> "-$15.20"
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	return "+" + FormatMoney(d)
}

// FormatFactor formats a fractional adjustment as a signed percentage.
// e.g., 0.015 -> "+1.5%", -0.008 -> "-0.8%"
func FormatFactor(pct decimal.Decimal) string {
	return fmt.Sprintf("%+.1f%%", pct.Shift(2).InexactFloat64())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value.
// e.g., 66.129 -> "66.1%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonth turns a "2006-01" bucket key into "Jan 2006". Keys that do not
// parse are returned unchanged.
func FormatMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// DirectionEmoji returns the marker shown next to a month's net change.
func DirectionEmoji(increase bool) string {
	if increase {
		return "🔺"
	}
	return "🔻"
}

// FormatSkippedDates describes rows left out of the monthly series because
// their date could not be read.
func FormatSkippedDates(n int) string {
	noun := "rows"
	if n == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%s %s skipped (unparseable date)", FormatNumber(int64(n)), noun)
}
