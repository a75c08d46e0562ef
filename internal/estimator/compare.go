package estimator

// ComparisonStatus says whether a household uses more than its regional average.
type ComparisonStatus string

const (
	// StatusAboveAverage means the daily consumption exceeds the regional average.
	StatusAboveAverage ComparisonStatus = "Above Average"

	// StatusBelowAverage means the daily consumption is at or below the regional average.
	StatusBelowAverage ComparisonStatus = "Below Average"
)

// Advice strings shown next to the comparison status.
const (
	AdviceAboveAverage = "Consider energy-saving measures"
	AdviceBelowAverage = "Great! Keep it up"
)

// Comparison places a result against the regional average for its tier.
type Comparison struct {
	HousingType     HousingType      `json:"housing_type"      yaml:"housing_type"`
	DailyEnergyKWh  float64          `json:"daily_energy_kwh"  yaml:"daily_energy_kwh"`
	RegionalAverage float64          `json:"regional_average"  yaml:"regional_average"`
	Delta           float64          `json:"delta"             yaml:"delta"`
	Status          ComparisonStatus `json:"status"            yaml:"status"`
	Advice          string           `json:"advice"            yaml:"advice"`
}

// Compare builds the regional comparison for an estimate. A delta of exactly
// zero counts as below average.
func Compare(result ConsumptionResult) Comparison {
	c := Comparison{
		HousingType:     result.HousingType,
		DailyEnergyKWh:  result.DailyEnergyKWh,
		RegionalAverage: RegionalAverage(result.HousingType),
		Delta:           result.ComparisonDelta,
		Status:          StatusBelowAverage,
		Advice:          AdviceBelowAverage,
	}
	if result.ComparisonDelta > 0 {
		c.Status = StatusAboveAverage
		c.Advice = AdviceAboveAverage
	}
	return c
}

// IsAboveAverage reports whether the comparison status is above average.
func (c Comparison) IsAboveAverage() bool {
	return c.Status == StatusAboveAverage
}
