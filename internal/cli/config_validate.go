package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (global file, project overlay and
VOLTWISE_* environment variables) for syntax and semantic correctness.

This includes:
- Configuration version compatibility
- Output format, precision and CO2 unit
- Log level
- Default household profile
- Server address and rate limit`,
		Example: `  # Validate current configuration
  voltwise config validate

  # Validate and show detailed information
  voltwise config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  CO2 unit: %s\n", cfg.Output.CO2Unit)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Household: %s (ac=%t, fridge=%t, washer=%t)\n",
		cfg.Household.HousingType, cfg.Household.AirConditioner,
		cfg.Household.Refrigerator, cfg.Household.WashingMachine)
	cmd.Printf("  Server: %s (%d requests per %s)\n",
		cfg.Server.Address, cfg.Server.RateLimit, cfg.Server.RateWindow)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
