package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the voltwise CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:           "voltwise",
		Short:         "Household electricity consumption estimator",
		Long:          "voltwise: estimate daily, monthly and yearly electricity use, cost and CO2 for a household",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				cmd.PrintErrf("Warning: could not load %s: %v\n", envFile, err)
			}

			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			if projectDir == "" {
				projectDir, _ = lookupEnv(config.EnvProjectDir)
			}
			projectFile := config.ResolveProjectFile(cmd.Context(), projectDir, startDir)
			config.SetGlobalConfig(config.NewWithProjectFile(cmd.Context(), projectFile))

			result := setupLogging(cmd)
			logResult = &result
			if projectFile != "" {
				logger.Debug().Ctx(cmd.Context()).Str("project_file", projectFile).Msg("project config resolved")
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"directory holding a "+config.ProjectConfigFile+" overlay (default: search upward from the working directory)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before VOLTWISE_* variables are read")

	cmd.AddCommand(
		NewEstimateCmd(), NewProjectCmd(), NewCompareCmd(),
		NewBatchCmd(), NewServeCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Estimate a 2BHK flat with an air conditioner
  voltwise estimate --housing 2BHK --ac yes

  # Fill in the household interactively
  voltwise estimate --interactive

  # Cumulative cost for the next 90 days as JSON
  voltwise project --housing 3BHK --fridge yes --days 90 --output json

  # Estimate every household in a file
  voltwise batch households.yaml --concurrency 8

  # Serve the HTTP API
  voltwise serve --address :9090

  # Set configuration values
  voltwise config set output.default_format json`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
