// Package estimator converts a household profile into daily, monthly and
// yearly electricity consumption, cost, emissions and comparison metrics.
//
// The computation is a pure function over a closed input domain: every
// HousingType tier and appliance has a fixed daily load, and all other
// figures are derived from the resulting daily energy. Estimate never fails
// and is safe for concurrent use; parsing and validation of user input lives
// in parse.go and is the caller's responsibility.
package estimator

import "fmt"

// HousingType is the housing-size tier that determines the base daily load.
type HousingType int

const (
	// OneBHK is a one bedroom-hall-kitchen dwelling.
	OneBHK HousingType = iota + 1

	// TwoBHK is a two bedroom-hall-kitchen dwelling.
	TwoBHK

	// ThreeBHK is a three bedroom-hall-kitchen dwelling.
	ThreeBHK
)

// HousingTypes lists the supported tiers in ascending size.
func HousingTypes() []HousingType {
	return []HousingType{OneBHK, TwoBHK, ThreeBHK}
}

// String returns the conventional label ("1BHK", "2BHK", "3BHK").
func (h HousingType) String() string {
	switch h {
	case OneBHK:
		return "1BHK"
	case TwoBHK:
		return "2BHK"
	case ThreeBHK:
		return "3BHK"
	default:
		return fmt.Sprintf("HousingType(%d)", int(h))
	}
}

// IsValid reports whether h is one of the supported tiers.
func (h HousingType) IsValid() bool {
	_, ok := baseLoadRooms[h]
	return ok
}

// MarshalText encodes the housing type as its label.
func (h HousingType) MarshalText() ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHousingType, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText decodes a housing label using ParseHousingType.
func (h *HousingType) UnmarshalText(text []byte) error {
	parsed, err := ParseHousingType(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Appliance is an optional appliance with a fixed daily add-on load.
type Appliance int

const (
	// AirConditioner adds 3.0 kWh per day.
	AirConditioner Appliance = iota

	// Refrigerator adds 3.0 kWh per day.
	Refrigerator

	// WashingMachine adds 1.2 kWh per day.
	WashingMachine
)

// Appliances returns every appliance in breakdown order.
func Appliances() []Appliance {
	return []Appliance{AirConditioner, Refrigerator, WashingMachine}
}

// String returns the display label of the appliance.
func (a Appliance) String() string {
	switch a {
	case AirConditioner:
		return "Air Conditioner"
	case Refrigerator:
		return "Refrigerator"
	case WashingMachine:
		return "Washing Machine"
	default:
		return fmt.Sprintf("Appliance(%d)", int(a))
	}
}

// DailyKWh returns the fixed daily add-on load of the appliance.
func (a Appliance) DailyKWh() float64 {
	return applianceAddOnKWh[a]
}

// Rating classifies daily consumption into efficiency brackets.
type Rating int

const (
	// RatingExcellent is below 5 kWh per day.
	RatingExcellent Rating = iota

	// RatingGood is at least 5 and below 10 kWh per day.
	RatingGood

	// RatingAverage is at least 10 and below 15 kWh per day.
	RatingAverage

	// RatingHigh is 15 kWh per day or more.
	RatingHigh
)

// String returns the bracket name.
func (r Rating) String() string {
	switch r {
	case RatingExcellent:
		return "Excellent"
	case RatingGood:
		return "Good"
	case RatingAverage:
		return "Average"
	case RatingHigh:
		return "High"
	default:
		return fmt.Sprintf("Rating(%d)", int(r))
	}
}

// MarshalText encodes the rating as its bracket name.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// HouseholdProfile is the input of a single estimate.
type HouseholdProfile struct {
	HousingType       HousingType `json:"housing_type"      yaml:"housing_type"`
	HasAirConditioner bool        `json:"air_conditioner"   yaml:"air_conditioner"`
	HasRefrigerator   bool        `json:"refrigerator"      yaml:"refrigerator"`
	HasWashingMachine bool        `json:"washing_machine"   yaml:"washing_machine"`
}

// Has reports whether the given appliance is selected.
func (p HouseholdProfile) Has(a Appliance) bool {
	switch a {
	case AirConditioner:
		return p.HasAirConditioner
	case Refrigerator:
		return p.HasRefrigerator
	case WashingMachine:
		return p.HasWashingMachine
	default:
		return false
	}
}

// With returns a copy of the profile with the appliance selected or cleared.
func (p HouseholdProfile) With(a Appliance, selected bool) HouseholdProfile {
	switch a {
	case AirConditioner:
		p.HasAirConditioner = selected
	case Refrigerator:
		p.HasRefrigerator = selected
	case WashingMachine:
		p.HasWashingMachine = selected
	}
	return p
}

// SelectedAppliances returns the selected appliances in breakdown order.
func (p HouseholdProfile) SelectedAppliances() []Appliance {
	selected := make([]Appliance, 0, len(applianceAddOnKWh))
	for _, a := range Appliances() {
		if p.Has(a) {
			selected = append(selected, a)
		}
	}
	return selected
}

// BreakdownEntry is one contributor to the daily load.
type BreakdownEntry struct {
	Label    string  `json:"label"     yaml:"label"`
	DailyKWh float64 `json:"daily_kwh" yaml:"daily_kwh"`
}

// ConsumptionResult holds every figure derived from a HouseholdProfile.
type ConsumptionResult struct {
	HousingType HousingType `json:"housing_type" yaml:"housing_type"`

	DailyEnergyKWh   float64 `json:"daily_energy_kwh"   yaml:"daily_energy_kwh"`
	MonthlyEnergyKWh float64 `json:"monthly_energy_kwh" yaml:"monthly_energy_kwh"`
	YearlyEnergyKWh  float64 `json:"yearly_energy_kwh"  yaml:"yearly_energy_kwh"`

	DailyCost   float64 `json:"daily_cost"   yaml:"daily_cost"`
	MonthlyCost float64 `json:"monthly_cost" yaml:"monthly_cost"`
	YearlyCost  float64 `json:"yearly_cost"  yaml:"yearly_cost"`

	EfficiencyRating Rating `json:"efficiency_rating" yaml:"efficiency_rating"`

	CO2YearlyKg   float64 `json:"co2_yearly_kg"   yaml:"co2_yearly_kg"`
	TreesToOffset float64 `json:"trees_to_offset" yaml:"trees_to_offset"`

	// Breakdown always starts with the base housing load.
	Breakdown []BreakdownEntry `json:"breakdown" yaml:"breakdown"`

	// ComparisonDelta is negative when the household is below the regional average.
	ComparisonDelta float64 `json:"comparison_delta" yaml:"comparison_delta"`
}
