package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/estimator"
)

// HouseholdFlags are the profile flags shared by estimate, project and compare.
// Unset flags fall back to the household section of the configuration.
type HouseholdFlags struct {
	Housing string
	AC      string
	Fridge  string
	Washer  string
}

func (f *HouseholdFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Housing, "housing", "", "housing type: 1BHK, 2BHK or 3BHK (default from config)")
	cmd.Flags().StringVar(&f.AC, "ac", "", "has an air conditioner (yes/no)")
	cmd.Flags().StringVar(&f.Fridge, "fridge", "", "has a refrigerator (yes/no)")
	cmd.Flags().StringVar(&f.Washer, "washer", "", "has a washing machine (yes/no)")
}

// Profile merges explicitly set flags over the configured household.
func (f *HouseholdFlags) Profile(cmd *cobra.Command, cfg *config.Config) (estimator.HouseholdProfile, error) {
	profile, err := cfg.Household.Profile()
	if err != nil {
		return estimator.HouseholdProfile{}, fmt.Errorf("configured household: %w", err)
	}

	if cmd.Flags().Changed("housing") {
		if profile.HousingType, err = estimator.ParseHousingType(f.Housing); err != nil {
			return estimator.HouseholdProfile{}, err
		}
	}

	answers := []struct {
		flag      string
		value     string
		appliance estimator.Appliance
	}{
		{"ac", f.AC, estimator.AirConditioner},
		{"fridge", f.Fridge, estimator.Refrigerator},
		{"washer", f.Washer, estimator.WashingMachine},
	}
	for _, a := range answers {
		if !cmd.Flags().Changed(a.flag) {
			continue
		}
		selected, parseErr := estimator.ParseYesNo(a.value)
		if parseErr != nil {
			return estimator.HouseholdProfile{}, fmt.Errorf("--%s: %w", a.flag, parseErr)
		}
		profile = profile.With(a.appliance, selected)
	}

	return profile, nil
}

// ResidentFlags are the optional personal details shown in the greeting.
type ResidentFlags struct {
	Name     string
	Age      int
	City     string
	Area     string
	Dwelling string
}

func (f *ResidentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Name, "name", "", "resident name for the greeting")
	cmd.Flags().IntVar(&f.Age, "age", 0, "resident age (1-120)")
	cmd.Flags().StringVar(&f.City, "city", "", "city")
	cmd.Flags().StringVar(&f.Area, "area", "", "area or neighbourhood")
	cmd.Flags().StringVar(&f.Dwelling, "dwelling", "Flat", "dwelling kind: Flat or Tenement")
}

// Resident validates the flags and returns the resident details.
func (f *ResidentFlags) Resident() (estimator.Resident, error) {
	dwelling, err := estimator.ParseDwelling(f.Dwelling)
	if err != nil {
		return estimator.Resident{}, err
	}
	r := estimator.Resident{
		Name:     f.Name,
		Age:      f.Age,
		City:     f.City,
		Area:     f.Area,
		Dwelling: dwelling,
	}
	if err = r.Validate(); err != nil {
		return estimator.Resident{}, err
	}
	return r, nil
}
