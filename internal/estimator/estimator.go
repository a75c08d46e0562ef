package estimator

import (
	"github.com/rshade/voltwise/internal/greenops"
)

// BaseLoad returns the daily base load of a housing tier in kWh.
// Unknown tiers have no base load.
func BaseLoad(h HousingType) float64 {
	rooms, ok := baseLoadRooms[h]
	if !ok {
		return 0
	}
	return rooms*LightingKWhPerRoom + rooms*FanKWhPerRoom
}

// RegionalAverage returns the typical daily consumption for a housing tier,
// or FallbackRegionalAverageKWh when the tier has no regional figure.
func RegionalAverage(h HousingType) float64 {
	if avg, ok := regionalAverageKWh[h]; ok {
		return avg
	}
	return FallbackRegionalAverageKWh
}

// RateDaily classifies a daily consumption figure. Boundary values fall into
// the higher-consumption bracket.
func RateDaily(dailyKWh float64) Rating {
	switch {
	case dailyKWh < GoodThresholdKWh:
		return RatingExcellent
	case dailyKWh < AverageThresholdKWh:
		return RatingGood
	case dailyKWh < HighThresholdKWh:
		return RatingAverage
	default:
		return RatingHigh
	}
}

// Estimate derives every consumption figure for the given profile.
//
// The daily energy is the base load of the housing tier plus the add-on of
// each selected appliance, accumulated in breakdown order so that the
// breakdown entries sum to DailyEnergyKWh. Monthly and yearly figures are
// exact multiples of the daily value (30 and 365 days). Estimate has no side
// effects and always returns a fresh result.
func Estimate(profile HouseholdProfile) ConsumptionResult {
	base := BaseLoad(profile.HousingType)

	breakdown := make([]BreakdownEntry, 0, 1+len(applianceAddOnKWh))
	breakdown = append(breakdown, BreakdownEntry{
		Label:    "Base (" + profile.HousingType.String() + ")",
		DailyKWh: base,
	})

	daily := base
	for _, a := range profile.SelectedAppliances() {
		kwh := a.DailyKWh()
		daily += kwh
		breakdown = append(breakdown, BreakdownEntry{Label: a.String(), DailyKWh: kwh})
	}

	monthly := daily * DaysPerMonth
	yearly := daily * DaysPerYear
	co2 := greenops.EmissionsFromEnergy(yearly)

	return ConsumptionResult{
		HousingType:      profile.HousingType,
		DailyEnergyKWh:   daily,
		MonthlyEnergyKWh: monthly,
		YearlyEnergyKWh:  yearly,
		DailyCost:        daily * UnitRate,
		MonthlyCost:      monthly * UnitRate,
		YearlyCost:       yearly * UnitRate,
		EfficiencyRating: RateDaily(daily),
		CO2YearlyKg:      co2,
		TreesToOffset:    greenops.TreesToOffset(co2),
		Breakdown:        breakdown,
		ComparisonDelta:  daily - RegionalAverage(profile.HousingType),
	}
}
