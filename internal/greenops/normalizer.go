package greenops

import (
	"math"
	"strings"
)

// getUnitFactor returns the conversion factor to kilograms for the provided
// unit and whether the unit is recognized. Matching is case-insensitive.
func getUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon value in any recognized unit to kilograms.
//
// Recognized units: g, kg, t, lb, gCO2e, kgCO2e, tCO2e, lbCO2e.
// Returns ErrNegativeValue for negative values, ErrInvalidUnit for unknown
// units and ErrCalculationOverflow for non-finite input or results.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}

	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}

	return result, nil
}

// FromKg converts kilograms into the given display unit. It is the inverse
// of NormalizeToKg and shares its errors.
func FromKg(kg float64, unit string) (float64, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return 0, ErrCalculationOverflow
	}

	if kg < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	return kg / factor, nil
}

// CanonicalUnit returns the short lower-case form of a recognized unit
// ("kgCO2e" becomes "kg"). Unknown units are returned unchanged.
func CanonicalUnit(unit string) string {
	lower := strings.ToLower(unit)
	if _, ok := getUnitFactor(lower); !ok {
		return unit
	}
	return strings.TrimSuffix(lower, "co2e")
}

// IsRecognizedUnit reports whether the provided unit string is a supported carbon unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := getUnitFactor(unit)
	return ok
}
