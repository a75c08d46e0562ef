package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate normalizes a CarbonInput to kilograms and expresses it as trees
// needed to offset it for a year, miles driven and smartphones charged.
//
// Normalization errors are returned together with an empty output. Values
// below MinEquivalencyThresholdKg yield an empty output carrying InputKg and
// no error. Non-finite intermediate results return ErrCalculationOverflow.
//
// Example:
//
//	output, err := Calculate(CarbonInput{Value: 3232.44, Unit: "kg"})
//	// output.DisplayText == "Offset by ~148 trees for a year, or driving ~16,836 miles"
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	trees := TreesToOffset(kg)
	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor

	for _, v := range []float64{trees, miles, phones} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	treesFormatted := formatEquivalencyValue(trees)
	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	results := []EquivalencyResult{
		{
			Type:           EquivalencyTreesToOffset,
			Value:          trees,
			FormattedValue: treesFormatted,
			Label:          "trees to offset",
		},
		{
			Type:           EquivalencyMilesDriven,
			Value:          miles,
			FormattedValue: milesFormatted,
			Label:          "miles driven",
		},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: phonesFormatted,
			Label:          "smartphones charged",
		},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Offset by ~%s trees for a year, or driving ~%s miles",
			treesFormatted, milesFormatted),
		CompactText: fmt.Sprintf("(≈ %s trees, %s mi)", treesFormatted, milesFormatted),
	}, nil
}

// CalculateForEnergy derives the yearly emissions of yearlyKWh and returns
// their equivalencies. Failures are logged and yield an empty output, so
// renderers can call it unconditionally.
func CalculateForEnergy(yearlyKWh float64) EquivalencyOutput {
	if yearlyKWh < 0 {
		log.Warn().Float64("yearly_kwh", yearlyKWh).Msg("negative energy passed to equivalency calculation")
		return EquivalencyOutput{IsEmpty: true}
	}

	output, err := Calculate(CarbonInput{Value: EmissionsFromEnergy(yearlyKWh), Unit: "kg"})
	if err != nil {
		log.Warn().Err(err).Float64("yearly_kwh", yearlyKWh).Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return output
}

// formatEquivalencyValue uses large number scaling for million/billion
// values and a rounded, comma-separated integer otherwise.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
