package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/voltwise/internal/config"
)

func keysHelp() string {
	return "Available keys:\n  " + strings.Join(config.Keys(), "\n  ")
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one configuration value",
		Long:    "Prints the effective value of a configuration key.\n\n" + keysHelp(),
		Example: `  voltwise config get output.default_format`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is validated and
// written to the global configuration file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value",
		Long:  "Validates and stores a configuration value in the global configuration file.\n\n" + keysHelp(),
		Example: `  voltwise config set output.default_format json
  voltwise config set household.housing_type 2BHK
  voltwise config set server.rate_window 30s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Start from the file alone so project and env overrides are not persisted.
			cfg := config.Defaults()
			if err := cfg.Load(); err != nil && !isNotExist(err) {
				return err
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Set %s = %s\n", strings.ToLower(args[0]), args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every effective configuration value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			entries := cfg.List()

			switch output {
			case "", config.FormatTable:
				for _, kv := range entries {
					cmd.Printf("%-28s %s\n", kv.Key, kv.Value)
				}
				return nil
			case config.FormatJSON, config.FormatYAML:
				values := make(map[string]string, len(entries))
				for _, kv := range entries {
					values[kv.Key] = kv.Value
				}
				return renderStructured(cmd.OutOrStdout(), output, values, nil)
			case config.FormatNDJSON:
				records := make([]any, len(entries))
				for i, kv := range entries {
					records[i] = kv
				}
				return renderStructured(cmd.OutOrStdout(), output, nil, records)
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml")

	return cmd
}
