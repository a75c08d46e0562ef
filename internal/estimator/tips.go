package estimator

// TipGroup is a titled list of energy-saving suggestions.
type TipGroup struct {
	Title string   `json:"title" yaml:"title"`
	Tips  []string `json:"tips"  yaml:"tips"`
}

// SavingTips returns the fixed energy-saving advice. A new slice is returned
// on every call so callers may modify it.
func SavingTips() []TipGroup {
	return []TipGroup{
		{
			Title: "Home Efficiency",
			Tips: []string{
				"Use LED bulbs instead of incandescent",
				"Set AC temperature to 24°C or higher",
				"Use natural light during the day",
				"Improve home insulation",
			},
		},
		{
			Title: "Appliance Management",
			Tips: []string{
				"Unplug devices when not in use",
				"Keep refrigerator at optimal temperature",
				"Use appliances during off-peak hours",
				"Regular maintenance of appliances",
			},
		},
	}
}

// ClosingAdvice is the general suggestion printed at the end of a report.
const ClosingAdvice = "Consider switching to solar panels, upgrading to energy-efficient appliances, " +
	"or implementing smart home automation!"
