package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr error
	}{
		{name: "grams", value: 718320, unit: "g", wantKg: 718.32},
		{name: "kilograms", value: 718.32, unit: "kg", wantKg: 718.32},
		{name: "tons with suffix", value: 3.23244, unit: "tCO2e", wantKg: 3232.44},
		{name: "pounds", value: 100, unit: "lb", wantKg: 45.3592},
		{name: "upper case", value: 100, unit: "KG", wantKg: 100},
		{name: "zero", value: 0, unit: "kg", wantKg: 0},
		{name: "empty unit", value: 1, unit: "", wantErr: ErrInvalidUnit},
		{name: "energy unit is not carbon", value: 1, unit: "kWh", wantErr: ErrInvalidUnit},
		{name: "negative", value: -100, unit: "kg", wantErr: ErrNegativeValue},
		{name: "NaN", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "multiplication overflow", value: math.MaxFloat64 / 100, unit: "t", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, tt.wantKg*0.0001+0.0001)
		})
	}
}

func TestFromKg(t *testing.T) {
	tests := []struct {
		name    string
		kg      float64
		unit    string
		want    float64
		wantErr error
	}{
		{name: "to grams", kg: 1.5, unit: "g", want: 1500},
		{name: "identity", kg: 718.32, unit: "kgCO2e", want: 718.32},
		{name: "to tons", kg: 3232.44, unit: "t", want: 3.23244},
		{name: "to pounds", kg: 45.3592, unit: "lb", want: 100},
		{name: "negative", kg: -1, unit: "kg", wantErr: ErrNegativeValue},
		{name: "unknown unit", kg: 1, unit: "stone", wantErr: ErrInvalidUnit},
		{name: "infinite", kg: math.Inf(1), unit: "kg", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromKg(tt.kg, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.want*0.0001+0.0001)
		})
	}
}

func TestCanonicalUnit(t *testing.T) {
	assert.Equal(t, "kg", CanonicalUnit("kgCO2e"))
	assert.Equal(t, "t", CanonicalUnit("T"))
	assert.Equal(t, "lb", CanonicalUnit("lbCO2e"))
	assert.Equal(t, "oz", CanonicalUnit("oz"))
}

func TestIsRecognizedUnit(t *testing.T) {
	tests := []struct {
		unit string
		want bool
	}{
		// Valid units
		{"g", true},
		{"kg", true},
		{"t", true},
		{"lb", true},
		{"gCO2e", true},
		{"kgCO2e", true},
		{"tCO2e", true},
		{"lbCO2e", true},
		// Case insensitivity
		{"G", true},
		{"KG", true},
		{"Kg", true},
		{"TCO2E", true},
		// Invalid units
		{"", false},
		{"invalid", false},
		{"oz", false},
		{"ton", false}, // We use 't' not 'ton'
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got := IsRecognizedUnit(tt.unit)
			assert.Equal(t, tt.want, got)
		})
	}
}
