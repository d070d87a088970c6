package calculator

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// displayFormat prints 12 fractional digits.
const displayFormat = "%.12f"

// NotApplicable is shown in place of a value that cannot be computed.
const NotApplicable = "N/A"

// FormatNumber renders v with thousands separators and exactly
// 12 fractional digits, e.g. 1234.5 -> "1,234.500000000000".
func FormatNumber(v float64) string {
	return message.NewPrinter(language.English).Sprintf(displayFormat, v)
}

// FormatOptional renders v, or NotApplicable when it is not set.
func FormatOptional(v NullFloat64) string {
	if !v.Valid {
		return NotApplicable
	}
	return FormatNumber(v.Float64)
}

// ResultRows returns the label/value pairs of the results table in display
// order.
func ResultRows(out Output) [][]string {
	return [][]string{
		{"Tokens Purchased", FormatNumber(out.TokensPurchased)},
		{"Future Value ($)", FormatOptional(out.FutureValue)},
		{"Break-even Price ($)", FormatNumber(out.BreakEvenPrice)},
		{"New Price After Unlock ($)", FormatNumber(out.NewPriceAfterUnlock)},
	}
}
