package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/rshade/ecofocus/internal/impact"
)

// Calculate converts input to kilograms and computes its equivalencies.
//
// Amounts below MinEquivalencyThresholdKg give an empty output with InputKg
// set and no error. Tree seedlings are only listed from TreeThresholdKg.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	km := kg / KilometerDrivenFactor
	phones := kg / SmartphoneChargeFactor
	if math.IsInf(km, 0) || math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	results := []EquivalencyResult{
		result(EquivalencyKilometersDriven, km, "km driven"),
		result(EquivalencySmartphonesCharged, phones, "smartphones charged"),
		result(EquivalencyHomeDays, kg/HomeDayFactor, "days of home electricity"),
	}
	if kg >= TreeThresholdKg {
		results = append(results, result(EquivalencyTreeSeedlings, kg/TreeSeedlingFactor, "tree seedlings grown for 10 years"))
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s km or charging ~%s smartphones",
			results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf("(≈ %s km, %s phones)", results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// FromImpacts computes the equivalencies of the climate change score of v,
// expressed in kg CO2e. Failures are logged and give an empty output.
func FromImpacts(v impact.Vector) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: v.Get(impact.Cch), Unit: "kgCO2e"})
	if err != nil {
		log.Warn().
			Str("component", "greenops").
			Err(err).
			Float64("cch", v.Get(impact.Cch)).
			Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

func result(t EquivalencyType, v float64, label string) EquivalencyResult {
	return EquivalencyResult{Type: t, Value: v, FormattedValue: formatEquivalencyValue(v), Label: label}
}

// formatEquivalencyValue rounds to an integer with separators, or uses the
// million/billion notation for large values.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
