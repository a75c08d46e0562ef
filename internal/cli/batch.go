package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/batch"
	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/logging"
	"github.com/rshade/voltwise/internal/tui"
)

// BatchReport is the structured output of `voltwise batch`.
type BatchReport struct {
	Households []batch.Row   `json:"households" yaml:"households"`
	Summary    batch.Summary `json:"summary"    yaml:"summary"`
}

// NewBatchCmd creates the "batch" command.
func NewBatchCmd() *cobra.Command {
	var (
		output      string
		concurrency int
		batchSize   int
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Estimate every household listed in a YAML or JSON file",
		Long: `Estimate every household listed in a YAML or JSON file of the form

  households:
    - id: flat-12
      housing_type: 2BHK
      ac: true
      fridge: true
      washing_machine: false

Households are estimated concurrently and reported in file order. Use "-" to
read from standard input. An invalid row fails the whole run.`,
		Example: `  voltwise batch households.yaml
  voltwise batch households.json --concurrency 8 --output ndjson
  cat households.yaml | voltwise batch -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			cfg := config.GetGlobalConfig()

			format, err := resolveOutputFormat(output, cfg)
			if err != nil {
				return err
			}

			file, err := readBatchFile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if len(file.Households) == 0 {
				return fmt.Errorf("%s: %w", args[0], batch.ErrEmptyItems)
			}

			opts := batch.Options{BatchSize: batchSize, Concurrency: concurrency}
			if !noProgress && isTerminal(os.Stderr) {
				bar := progressbar.NewOptions(len(file.Households),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Estimating households"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				defer func() { _ = bar.Finish() }()
				opts.OnProgress = func(s batch.ProgressSnapshot) {
					_ = bar.Set(s.ProcessedItems)
				}
			}

			rows, err := batch.Run(ctx, file.Households, opts)
			if err != nil {
				return err
			}
			summary := batch.Summarize(rows)
			log.Debug().Ctx(ctx).
				Int("households", summary.Households).
				Float64("total_daily_kwh", summary.TotalDailyKWh).
				Msg("batch summarized")

			w := cmd.OutOrStdout()
			if format == config.FormatTable {
				_, err = fmt.Fprintln(w, tui.RenderBatch(rows, summary, reportOptions(cfg, w)))
				return err
			}

			records := make([]any, len(rows))
			for i, r := range rows {
				records[i] = r
			}
			return renderStructured(w, format, BatchReport{Households: rows, Summary: summary}, records)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", batch.DefaultConcurrency, "households estimated in parallel")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultBatchSize,
		fmt.Sprintf("households per batch (%d-%d)", batch.MinBatchSize, batch.MaxBatchSize))
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

func readBatchFile(stdin io.Reader, path string) (batch.File, error) {
	if path == "-" {
		return batch.Decode(stdin)
	}
	return batch.LoadFile(path)
}
