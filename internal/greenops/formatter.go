package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision < 0 {
		precision = 0
	}

	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	if precision == 0 {
		return FormatNumber(int64(rounded))
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, fracPart, found := strings.Cut(formatted, ".")
	if !found {
		return formatted
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	// "-0.50" would lose its sign once the integer part is reformatted.
	sign := ""
	if n == 0 && strings.HasPrefix(intPart, "-") {
		sign = "-"
	}
	return sign + FormatNumber(n) + "." + fracPart
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above LargeNumberThreshold use "~X.X million" format and
// values at or above BillionThreshold use "~X.X billion" format. Smaller
// values are rounded and comma-separated.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}

	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}

	return FormatNumber(int64(math.Round(n)))
}

// FormatKWh renders an energy figure such as "1,234.56 kWh".
func FormatKWh(kwh float64, precision int) string {
	return FormatFloat(kwh, precision) + " kWh"
}

// FormatCO2 renders a kilogram CO2 figure in the requested display unit,
// for example FormatCO2(3232.44, "t", 2) returns "3.23 t CO2".
// Unknown units fall back to kilograms.
func FormatCO2(kg float64, unit string, precision int) string {
	value, err := FromKg(kg, unit)
	if err != nil {
		return FormatFloat(kg, precision) + " kg CO2"
	}
	return FormatFloat(value, precision) + " " + CanonicalUnit(unit) + " CO2"
}
