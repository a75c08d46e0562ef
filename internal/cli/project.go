package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/logging"
	"github.com/rshade/voltwise/internal/tui"
)

// ProjectionReport is the structured output of `voltwise project`.
type ProjectionReport struct {
	Profile    estimator.HouseholdProfile  `json:"profile"       yaml:"profile"`
	DailyKWh   float64                     `json:"daily_kwh"     yaml:"daily_kwh"`
	DailyCost  float64                     `json:"daily_cost"    yaml:"daily_cost"`
	Days       int                         `json:"days"          yaml:"days"`
	Projection []estimator.ProjectionPoint `json:"projection"    yaml:"projection"`
}

// NewProjectCmd creates the "project" command.
func NewProjectCmd() *cobra.Command {
	var (
		household HouseholdFlags
		output    string
		days      int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show cumulative cost and energy day by day",
		Example: `  # Default 30-day projection
  voltwise project --housing 2BHK --ac yes

  # A full year as NDJSON, one line per day
  voltwise project --housing 1BHK --days 365 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()

			format, err := resolveOutputFormat(output, cfg)
			if err != nil {
				return err
			}
			profile, err := household.Profile(cmd, cfg)
			if err != nil {
				return err
			}

			result := estimator.Estimate(profile)
			points, err := estimator.Project(result, days)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug().Ctx(ctx).
				Str("housing_type", profile.HousingType.String()).
				Float64("daily_kwh", result.DailyEnergyKWh).
				Int("days", days).
				Msg("projection computed")

			w := cmd.OutOrStdout()
			if format == config.FormatTable {
				_, err = fmt.Fprintln(w, tui.RenderProjectionTable(result, points, cfg.Output.Precision))
				return err
			}

			records := make([]any, len(points))
			for i, p := range points {
				records[i] = p
			}
			return renderStructured(w, format, ProjectionReport{
				Profile:    profile,
				DailyKWh:   result.DailyEnergyKWh,
				DailyCost:  result.DailyCost,
				Days:       days,
				Projection: points,
			}, records)
		},
	}

	household.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	cmd.Flags().IntVar(&days, "days", estimator.DefaultProjectionDays,
		fmt.Sprintf("number of days to project (1-%d)", estimator.MaxProjectionDays))

	return cmd
}
