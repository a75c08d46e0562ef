package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/tui"
)

const defaultTerminalWidth = 80

// resolveOutputFormat returns the flag value, or the configured default when
// the flag is empty, and rejects unknown formats.
func resolveOutputFormat(flagValue string, cfg *config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if !slices.Contains(config.OutputFormats(), format) {
		return "", fmt.Errorf("unsupported output format: %s (expected one of %s)",
			format, strings.Join(config.OutputFormats(), ", "))
	}
	return format, nil
}

// renderStructured writes v as JSON, NDJSON or YAML. For NDJSON every element
// of records becomes one line; v is ignored.
func renderStructured(w io.Writer, format string, v any, records []any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case config.FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding ndjson record: %w", err)
			}
		}
		return nil

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// reportOptions builds the table renderer options from the configuration and
// the width of the attached terminal.
func reportOptions(cfg *config.Config, w io.Writer) tui.ReportOptions {
	width := defaultTerminalWidth
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}
	return tui.ReportOptions{
		Precision: cfg.Output.Precision,
		CO2Unit:   cfg.Output.CO2Unit,
		Width:     width,
	}
}
