package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/greenops"
	"github.com/rshade/voltwise/internal/logging"
	"github.com/rshade/voltwise/internal/tui"
)

// EstimateParams holds the parameters for the estimate command execution.
type EstimateParams struct {
	Household   HouseholdFlags
	Resident    ResidentFlags
	Output      string
	Days        int
	Interactive bool
}

// EstimateReport is the structured output of `voltwise estimate`.
type EstimateReport struct {
	Greeting    string                      `json:"greeting,omitempty"   yaml:"greeting,omitempty"`
	Location    string                      `json:"location,omitempty"   yaml:"location,omitempty"`
	Resident    *estimator.Resident         `json:"resident,omitempty"   yaml:"resident,omitempty"`
	Profile     estimator.HouseholdProfile  `json:"profile"              yaml:"profile"`
	Result      estimator.ConsumptionResult `json:"result"               yaml:"result"`
	Comparison  estimator.Comparison        `json:"comparison"           yaml:"comparison"`
	Projection  []estimator.ProjectionPoint `json:"projection,omitempty" yaml:"projection,omitempty"`
	Equivalency greenops.EquivalencyOutput  `json:"equivalency"          yaml:"equivalency"`
	Tips        []estimator.TipGroup        `json:"tips"                 yaml:"tips"`
}

// NewEstimateReport assembles the structured report for one household.
// days of zero omits the projection.
func NewEstimateReport(
	resident estimator.Resident,
	profile estimator.HouseholdProfile,
	days int,
) (EstimateReport, error) {
	result := estimator.Estimate(profile)
	report := EstimateReport{
		Profile:     profile,
		Result:      result,
		Comparison:  estimator.Compare(result),
		Equivalency: greenops.CalculateForEnergy(result.YearlyEnergyKWh),
		Tips:        estimator.SavingTips(),
	}

	if days > 0 {
		points, err := estimator.Project(result, days)
		if err != nil {
			return EstimateReport{}, err
		}
		report.Projection = points
	}

	if resident.HasName() {
		r := resident
		report.Resident = &r
		report.Greeting = resident.Greeting()
		report.Location = resident.LocationLine(profile.HousingType)
	}
	return report, nil
}

// NewEstimateCmd creates the "estimate" command.
func NewEstimateCmd() *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate electricity consumption, cost and CO2 for a household",
		Long: `Estimate daily, monthly and yearly electricity consumption for a household
from its housing type and appliances, with cost, efficiency rating, CO2
emissions, trees needed to offset them and a comparison with the regional
average. Flags that are not given fall back to the household section of the
configuration.`,
		Example: `  # One bedroom flat without appliances
  voltwise estimate --housing 1BHK

  # Two bedroom flat with every appliance, as JSON
  voltwise estimate --housing 2BHK --ac yes --fridge yes --washer yes --output json

  # Personalised report
  voltwise estimate --housing 3BHK --ac yes --name Asha --city Pune --area Kothrud

  # Interactive form
  voltwise estimate --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, &params)
		},
	}

	params.Household.register(cmd)
	params.Resident.register(cmd)
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	cmd.Flags().IntVar(&params.Days, "days", estimator.DefaultProjectionDays,
		"days of cumulative projection to include (0 to omit)")
	cmd.Flags().BoolVarP(&params.Interactive, "interactive", "i", false, "launch the interactive form")

	return cmd
}

func executeEstimate(cmd *cobra.Command, params *EstimateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output, cfg)
	if err != nil {
		return err
	}
	profile, err := params.Household.Profile(cmd, cfg)
	if err != nil {
		return err
	}
	resident, err := params.Resident.Resident()
	if err != nil {
		return err
	}
	if params.Days < 0 {
		return fmt.Errorf("%w: got %d", estimator.ErrInvalidProjectionDays, params.Days)
	}

	if params.Interactive {
		resident, profile, err = runInteractiveForm(ctx, cmd, cfg, resident, profile)
		if err != nil {
			return err
		}
	}

	report, err := NewEstimateReport(resident, profile, params.Days)
	if err != nil {
		return err
	}
	log.Debug().Ctx(ctx).
		Str("housing_type", profile.HousingType.String()).
		Float64("daily_kwh", report.Result.DailyEnergyKWh).
		Str("rating", report.Result.EfficiencyRating.String()).
		Msg("estimate computed")

	return renderEstimate(cmd.OutOrStdout(), format, cfg, resident, report)
}

func renderEstimate(
	w io.Writer,
	format string,
	cfg *config.Config,
	resident estimator.Resident,
	report EstimateReport,
) error {
	if format == config.FormatTable {
		_, err := fmt.Fprintln(w, tui.RenderReport(resident, report.Result, report.Projection, reportOptions(cfg, w)))
		return err
	}
	return renderStructured(w, format, report, []any{report})
}

// runInteractiveForm runs the form and returns the final selections.
func runInteractiveForm(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	resident estimator.Resident,
	profile estimator.HouseholdProfile,
) (estimator.Resident, estimator.HouseholdProfile, error) {
	model := tui.NewFormModel(resident, profile, reportOptions(cfg, cmd.OutOrStdout()))
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	finalModel, err := program.Run()
	if err != nil {
		return resident, profile, fmt.Errorf("running interactive form: %w", err)
	}

	form, ok := finalModel.(*tui.FormModel)
	if !ok {
		return resident, profile, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return form.Resident(), form.Profile(), nil
}
