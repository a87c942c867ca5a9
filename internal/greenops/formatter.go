package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators: 18248 gives
// "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators:
// FormatFloat(1234.567, 2) gives "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), f)
}

// FormatImpact formats an impact value for a table cell. Non-zero values
// too small to show at precision switch to scientific notation.
func FormatImpact(v float64, precision int) string {
	if v != 0 && math.Abs(v) < math.Pow(10, -float64(precision)) {
		return fmt.Sprintf("%.*e", max(precision, 1), v)
	}
	return FormatFloat(v, precision)
}

// FormatLarge formats large numbers as "~X.X million" or "~X.X billion",
// and smaller ones with separators.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
