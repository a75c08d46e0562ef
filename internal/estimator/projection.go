package estimator

import "fmt"

// ProjectionPoint is the cumulative cost and energy after Day days.
type ProjectionPoint struct {
	Day       int     `json:"day"        yaml:"day"`
	CostTotal float64 `json:"cost_total" yaml:"cost_total"`
	KWhTotal  float64 `json:"kwh_total"  yaml:"kwh_total"`
}

// Project returns the cumulative projection for days 1..days.
//
// Each point is computed as dailyCost*day and dailyEnergy*day rather than by
// running sums. days must be between 1 and MaxProjectionDays.
func Project(result ConsumptionResult, days int) ([]ProjectionPoint, error) {
	if days < 1 || days > MaxProjectionDays {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidProjectionDays, days, MaxProjectionDays)
	}

	points := make([]ProjectionPoint, days)
	for i := range points {
		day := i + 1
		points[i] = ProjectionPoint{
			Day:       day,
			CostTotal: result.DailyCost * float64(day),
			KWhTotal:  result.DailyEnergyKWh * float64(day),
		}
	}
	return points, nil
}

// MonthProjection is Project with DefaultProjectionDays.
func MonthProjection(result ConsumptionResult) []ProjectionPoint {
	points, _ := Project(result, DefaultProjectionDays)
	return points
}
