package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/tui"
)

// NewCompareCmd creates the "compare" command.
func NewCompareCmd() *cobra.Command {
	var (
		household HouseholdFlags
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a household with the regional average for its housing type",
		Example: `  voltwise compare --housing 3BHK --ac yes
  voltwise compare --housing 2BHK --ac yes --fridge yes --washer yes --output yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			format, err := resolveOutputFormat(output, cfg)
			if err != nil {
				return err
			}
			profile, err := household.Profile(cmd, cfg)
			if err != nil {
				return err
			}

			comparison := estimator.Compare(estimator.Estimate(profile))

			w := cmd.OutOrStdout()
			if format == config.FormatTable {
				_, err = fmt.Fprintln(w, tui.RenderComparison(comparison, cfg.Output.Precision))
				return err
			}
			return renderStructured(w, format, comparison, []any{comparison})
		},
	}

	household.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")

	return cmd
}
