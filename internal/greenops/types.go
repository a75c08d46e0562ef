// Package greenops turns electricity consumption into carbon emissions and
// expresses those emissions as relatable equivalencies (trees needed to
// offset them, miles driven, smartphones charged).
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyTreesToOffset is the number of trees absorbing the CO2 over a year.
	EquivalencyTreesToOffset EquivalencyType = iota

	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTreesToOffset:
		return "TreesToOffset"
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name so JSON and YAML output stay readable.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput represents carbon emission data for equivalency calculation.
type CarbonInput struct {
	// Value is the numeric carbon emission amount.
	Value float64 `json:"value" yaml:"value"`

	// Unit is the measurement unit (g, kg, t, lb and their CO2e variants).
	Unit string `json:"unit" yaml:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"            yaml:"type"`
	Value          float64         `json:"value"           yaml:"value"`
	FormattedValue string          `json:"formatted_value" yaml:"formatted_value"`
	Label          string          `json:"label"           yaml:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg" yaml:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results" yaml:"results"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Offset by ~148 trees for a year, or driving ~16,836 miles"
	DisplayText string `json:"display_text" yaml:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	// Example: "(≈ 148 trees, 16,836 mi)"
	CompactText string `json:"compact_text" yaml:"compact_text"`

	IsEmpty bool `json:"is_empty" yaml:"is_empty"`
}

// Find returns the result of the given type, if present.
func (o EquivalencyOutput) Find(t EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == t {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}
