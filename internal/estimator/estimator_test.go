package estimator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/voltwise/internal/estimator"
)

// allProfiles enumerates every housing tier with every appliance combination.
func allProfiles() []estimator.HouseholdProfile {
	var profiles []estimator.HouseholdProfile
	for _, h := range estimator.HousingTypes() {
		for mask := range 8 {
			profiles = append(profiles, estimator.HouseholdProfile{
				HousingType:       h,
				HasAirConditioner: mask&1 != 0,
				HasRefrigerator:   mask&2 != 0,
				HasWashingMachine: mask&4 != 0,
			})
		}
	}
	return profiles
}

func TestBaseLoad(t *testing.T) {
	// Runtime operands keep the float evaluation order of the production formula.
	lighting, fan := estimator.LightingKWhPerRoom, estimator.FanKWhPerRoom

	tests := []struct {
		housing estimator.HousingType
		rooms   float64
		approx  float64
	}{
		{estimator.OneBHK, 2, 2.4},
		{estimator.TwoBHK, 3, 3.6},
		{estimator.ThreeBHK, 4, 4.8},
	}

	for _, tt := range tests {
		t.Run(tt.housing.String(), func(t *testing.T) {
			got := estimator.BaseLoad(tt.housing)
			//nolint:testifylint // Exact formula reproduction.
			assert.Equal(t, tt.rooms*lighting+tt.rooms*fan, got)
			assert.InDelta(t, tt.approx, got, 1e-9)
		})
	}

	assert.Zero(t, estimator.BaseLoad(estimator.HousingType(0)))
}

func TestRegionalAverage(t *testing.T) {
	assert.InDelta(t, 4.5, estimator.RegionalAverage(estimator.OneBHK), 1e-9)
	assert.InDelta(t, 6.5, estimator.RegionalAverage(estimator.TwoBHK), 1e-9)
	assert.InDelta(t, 8.5, estimator.RegionalAverage(estimator.ThreeBHK), 1e-9)
	assert.InDelta(t, 8.0, estimator.RegionalAverage(estimator.HousingType(42)), 1e-9)
}

func TestRateDaily(t *testing.T) {
	tests := []struct {
		name  string
		daily float64
		want  estimator.Rating
	}{
		{"zero", 0, estimator.RatingExcellent},
		{"just below five", 4.999, estimator.RatingExcellent},
		{"exactly five", 5.0, estimator.RatingGood},
		{"just below ten", 9.999, estimator.RatingGood},
		{"exactly ten", 10.0, estimator.RatingAverage},
		{"just below fifteen", 14.999, estimator.RatingAverage},
		{"exactly fifteen", 15.0, estimator.RatingHigh},
		{"far above", 42, estimator.RatingHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimator.RateDaily(tt.daily))
		})
	}
}

func TestEstimate_Examples(t *testing.T) {
	t.Run("one BHK without appliances", func(t *testing.T) {
		got := estimator.Estimate(estimator.HouseholdProfile{HousingType: estimator.OneBHK})

		assert.InDelta(t, 2.4, got.DailyEnergyKWh, 1e-9)
		assert.InDelta(t, 72.0, got.MonthlyEnergyKWh, 1e-9)
		assert.InDelta(t, 876.0, got.YearlyEnergyKWh, 1e-9)
		assert.InDelta(t, 12.0, got.DailyCost, 1e-9)
		assert.InDelta(t, 360.0, got.MonthlyCost, 1e-9)
		assert.InDelta(t, 4380.0, got.YearlyCost, 1e-9)
		assert.Equal(t, estimator.RatingExcellent, got.EfficiencyRating)
		assert.InDelta(t, -2.1, got.ComparisonDelta, 1e-9)
		require.Len(t, got.Breakdown, 1)
		assert.Equal(t, "Base (1BHK)", got.Breakdown[0].Label)
	})

	t.Run("two BHK with every appliance", func(t *testing.T) {
		got := estimator.Estimate(estimator.HouseholdProfile{
			HousingType:       estimator.TwoBHK,
			HasAirConditioner: true,
			HasRefrigerator:   true,
			HasWashingMachine: true,
		})

		assert.InDelta(t, 10.8, got.DailyEnergyKWh, 1e-9)
		assert.Equal(t, estimator.RatingAverage, got.EfficiencyRating)
		assert.InDelta(t, 3942.0, got.YearlyEnergyKWh, 1e-9)
		assert.InDelta(t, 3232.44, got.CO2YearlyKg, 1e-6)
		assert.InDelta(t, 148.5, got.TreesToOffset, 0.05)
		assert.InDelta(t, 4.3, got.ComparisonDelta, 1e-9)

		labels := make([]string, 0, len(got.Breakdown))
		for _, e := range got.Breakdown {
			labels = append(labels, e.Label)
		}
		assert.Equal(t, []string{"Base (2BHK)", "Air Conditioner", "Refrigerator", "Washing Machine"}, labels)
	})

	t.Run("three BHK with air conditioner", func(t *testing.T) {
		got := estimator.Estimate(estimator.HouseholdProfile{
			HousingType:       estimator.ThreeBHK,
			HasAirConditioner: true,
		})

		assert.InDelta(t, 7.8, got.DailyEnergyKWh, 1e-9)
		assert.Equal(t, estimator.RatingGood, got.EfficiencyRating)
		assert.InDelta(t, -0.7, got.ComparisonDelta, 1e-9)
	})
}

func TestEstimate_ExactMultiples(t *testing.T) {
	for _, p := range allProfiles() {
		got := estimator.Estimate(p)

		//nolint:testifylint // Bit-exact multiples are the contract.
		assert.Equal(t, got.DailyEnergyKWh*30, got.MonthlyEnergyKWh)
		//nolint:testifylint // Bit-exact multiples are the contract.
		assert.Equal(t, got.DailyEnergyKWh*365, got.YearlyEnergyKWh)
		assert.InDelta(t, got.DailyEnergyKWh*estimator.UnitRate, got.DailyCost, 1e-9)
		assert.InDelta(t, got.MonthlyEnergyKWh*estimator.UnitRate, got.MonthlyCost, 1e-9)
		assert.InDelta(t, got.YearlyEnergyKWh*estimator.UnitRate, got.YearlyCost, 1e-9)
		assert.InDelta(t, got.YearlyEnergyKWh*0.82, got.CO2YearlyKg, 1e-9)
		assert.InDelta(t, got.CO2YearlyKg/21.77, got.TreesToOffset, 1e-9)
	}
}

func TestEstimate_IsPure(t *testing.T) {
	for _, p := range allProfiles() {
		first := estimator.Estimate(p)
		second := estimator.Estimate(p)
		assert.Equal(t, first, second)

		// Mutating a returned breakdown must not leak into later results.
		first.Breakdown[0].DailyKWh = -1
		assert.Equal(t, second, estimator.Estimate(p))
	}
}

func TestEstimate_BreakdownSumsToDaily(t *testing.T) {
	for _, p := range allProfiles() {
		got := estimator.Estimate(p)

		require.Len(t, got.Breakdown, 1+len(p.SelectedAppliances()))
		assert.Equal(t, "Base ("+p.HousingType.String()+")", got.Breakdown[0].Label)

		sum := 0.0
		for _, e := range got.Breakdown {
			sum += e.DailyKWh
		}
		assert.InDelta(t, got.DailyEnergyKWh, sum, 1e-9)
	}
}

func TestEstimate_AddingApplianceIsMonotonic(t *testing.T) {
	for _, p := range allProfiles() {
		before := estimator.Estimate(p)

		for _, a := range estimator.Appliances() {
			if p.Has(a) {
				continue
			}
			after := estimator.Estimate(p.With(a, true))

			assert.InDelta(t, a.DailyKWh(), after.DailyEnergyKWh-before.DailyEnergyKWh, 1e-9,
				"%s on %s", a, p.HousingType)
			assert.Greater(t, after.DailyEnergyKWh, before.DailyEnergyKWh)
			assert.GreaterOrEqual(t, after.MonthlyEnergyKWh, before.MonthlyEnergyKWh)
			assert.GreaterOrEqual(t, after.YearlyEnergyKWh, before.YearlyEnergyKWh)
			assert.GreaterOrEqual(t, after.DailyCost, before.DailyCost)
			assert.GreaterOrEqual(t, after.YearlyCost, before.YearlyCost)
			assert.GreaterOrEqual(t, after.CO2YearlyKg, before.CO2YearlyKg)
			assert.GreaterOrEqual(t, after.TreesToOffset, before.TreesToOffset)
			assert.GreaterOrEqual(t, after.ComparisonDelta, before.ComparisonDelta)
			assert.GreaterOrEqual(t, after.EfficiencyRating, before.EfficiencyRating)
			assert.Len(t, after.Breakdown, len(before.Breakdown)+1)
		}
	}
}

func TestEstimate_NoProfileLandsOnBoundary(t *testing.T) {
	for _, p := range allProfiles() {
		daily := estimator.Estimate(p).DailyEnergyKWh
		for _, boundary := range []float64{5, 10, 15} {
			assert.NotEqual(t, boundary, daily) //nolint:testifylint // Exact equality is the point.
		}
	}
}

func TestHouseholdProfile_With(t *testing.T) {
	p := estimator.HouseholdProfile{HousingType: estimator.OneBHK}

	withAC := p.With(estimator.AirConditioner, true)
	assert.True(t, withAC.HasAirConditioner)
	assert.False(t, p.HasAirConditioner, "With must not modify the receiver")

	assert.Equal(t, []estimator.Appliance{estimator.AirConditioner}, withAC.SelectedAppliances())
	assert.False(t, withAC.With(estimator.AirConditioner, false).HasAirConditioner)
	assert.False(t, p.Has(estimator.Appliance(99)))
}

func BenchmarkEstimate(b *testing.B) {
	p := estimator.HouseholdProfile{
		HousingType:       estimator.TwoBHK,
		HasAirConditioner: true,
		HasRefrigerator:   true,
		HasWashingMachine: true,
	}
	for b.Loop() {
		_ = estimator.Estimate(p)
	}
}
