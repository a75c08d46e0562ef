package greenops

// EmissionsFromEnergy returns the kg CO2 emitted by drawing kwh from the grid.
func EmissionsFromEnergy(kwh float64) float64 {
	return kwh * GridEmissionFactor
}

// TreesToOffset returns how many trees absorb kgCO2 over one year.
func TreesToOffset(kgCO2 float64) float64 {
	return kgCO2 / TreeAbsorptionFactor
}
