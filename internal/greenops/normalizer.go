package greenops

import (
	"math"
	"strings"
)

func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e", "kg co2 eq":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts value in unit to kilograms. Unit matching is
// case-insensitive.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
