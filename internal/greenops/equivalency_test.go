package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionsFromEnergy(t *testing.T) {
	tests := []struct {
		name      string
		kwh       float64
		wantKg    float64
		wantTrees float64
	}{
		{name: "one BHK without appliances", kwh: 876.0, wantKg: 718.32, wantTrees: 32.996},
		{name: "fully equipped two BHK", kwh: 3942.0, wantKg: 3232.44, wantTrees: 148.48},
		{name: "zero consumption", kwh: 0, wantKg: 0, wantTrees: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kg := EmissionsFromEnergy(tt.kwh)
			assert.InDelta(t, tt.wantKg, kg, 0.001)
			assert.InDelta(t, tt.wantTrees, TreesToOffset(kg), 0.01)
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       CarbonInput
		wantTrees   float64
		wantMiles   float64
		wantIsEmpty bool
		wantErr     error
	}{
		{
			name:      "kilograms",
			input:     CarbonInput{Value: 3232.44, Unit: "kg"},
			wantTrees: 148.48,  // 3232.44 / 21.77
			wantMiles: 16835.6, // 3232.44 / 0.192
		},
		{
			name:      "metric tons normalized",
			input:     CarbonInput{Value: 3.23244, Unit: "tCO2e"},
			wantTrees: 148.48,
			wantMiles: 16835.6,
		},
		{
			name:      "exactly at threshold",
			input:     CarbonInput{Value: 1.0, Unit: "kg"},
			wantTrees: 0.0459,
			wantMiles: 5.2083,
		},
		{
			name:        "below threshold returns empty",
			input:       CarbonInput{Value: 500, Unit: "g"},
			wantIsEmpty: true,
		},
		{
			name:    "negative value",
			input:   CarbonInput{Value: -1, Unit: "kg"},
			wantErr: ErrNegativeValue,
		},
		{
			name:    "unknown unit",
			input:   CarbonInput{Value: 10, Unit: "kWh"},
			wantErr: ErrInvalidUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.Empty(t, got.Results)
				return
			}

			assert.False(t, got.IsEmpty)
			require.Len(t, got.Results, 3)

			trees, ok := got.Find(EquivalencyTreesToOffset)
			require.True(t, ok)
			assert.InDelta(t, tt.wantTrees, trees.Value, tt.wantTrees*0.01)
			assert.Equal(t, "trees to offset", trees.Label)

			miles, ok := got.Find(EquivalencyMilesDriven)
			require.True(t, ok)
			assert.InDelta(t, tt.wantMiles, miles.Value, tt.wantMiles*0.01)
		})
	}
}

func TestCalculate_DisplayText(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 3232.44, Unit: "kg"})
	require.NoError(t, err)

	assert.Equal(t, "Offset by ~148 trees for a year, or driving ~16,836 miles", got.DisplayText)
	assert.Equal(t, "(≈ 148 trees, 16,836 mi)", got.CompactText)

	phones, ok := got.Find(EquivalencySmartphonesCharged)
	require.True(t, ok)
	assert.Equal(t, "393,241", phones.FormattedValue)
}

func TestCalculate_LargeNumberFormatting(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 1_000_000, Unit: "kg"})
	require.NoError(t, err)
	assert.Contains(t, got.DisplayText, "million")

	got, err = Calculate(CarbonInput{Value: 1_000_000, Unit: "t"})
	require.NoError(t, err)
	assert.Contains(t, got.DisplayText, "billion")
}

func TestCalculateForEnergy(t *testing.T) {
	got := CalculateForEnergy(3942.0)
	assert.False(t, got.IsEmpty)
	assert.InDelta(t, 3232.44, got.InputKg, 0.001)

	assert.True(t, CalculateForEnergy(-1).IsEmpty)
	assert.True(t, CalculateForEnergy(0).IsEmpty)
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "TreesToOffset", EquivalencyTreesToOffset.String())
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}

func BenchmarkCalculateForEnergy(b *testing.B) {
	for b.Loop() {
		_ = CalculateForEnergy(3942.0)
	}
}
