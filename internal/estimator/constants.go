package estimator

// Per-room fixed loads in kWh per day. A tier's base load is
// rooms*LightingKWhPerRoom + rooms*FanKWhPerRoom, evaluated in that order.
const (
	LightingKWhPerRoom = 0.4
	FanKWhPerRoom      = 0.8
)

// Appliance add-on loads in kWh per day.
const (
	AirConditionerKWh = 3.0
	RefrigeratorKWh   = 3.0
	WashingMachineKWh = 1.2
)

// Derived-figure constants.
const (
	// UnitRate is the fixed tariff in currency units (INR) per kWh.
	UnitRate = 5.0

	// CurrencySymbol is the display symbol for UnitRate.
	CurrencySymbol = "₹"

	// DaysPerMonth and DaysPerYear are calendar approximations.
	DaysPerMonth = 30
	DaysPerYear  = 365

	// DefaultProjectionDays is the length of the cumulative projection.
	DefaultProjectionDays = 30

	// MaxProjectionDays bounds Project requests from external callers.
	MaxProjectionDays = DaysPerYear
)

// Efficiency bracket thresholds in kWh per day. Each is the inclusive lower
// bound of the next bracket.
const (
	GoodThresholdKWh    = 5.0
	AverageThresholdKWh = 10.0
	HighThresholdKWh    = 15.0
)

// FallbackRegionalAverageKWh is used for a housing type without a regional figure.
const FallbackRegionalAverageKWh = 8.0

// baseLoadRooms maps each tier to the room count used in the base load formula.
//
//nolint:gochecknoglobals // Immutable lookup table.
var baseLoadRooms = map[HousingType]float64{
	OneBHK:   2,
	TwoBHK:   3,
	ThreeBHK: 4,
}

// regionalAverageKWh is the typical daily consumption per tier.
//
//nolint:gochecknoglobals // Immutable lookup table.
var regionalAverageKWh = map[HousingType]float64{
	OneBHK:   4.5,
	TwoBHK:   6.5,
	ThreeBHK: 8.5,
}

// applianceAddOnKWh is the fixed daily add-on per appliance.
//
//nolint:gochecknoglobals // Immutable lookup table.
var applianceAddOnKWh = map[Appliance]float64{
	AirConditioner: AirConditionerKWh,
	Refrigerator:   RefrigeratorKWh,
	WashingMachine: WashingMachineKWh,
}
