package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/voltwise/internal/logging"
)

// getLogger is used while the configuration itself is being loaded, before
// the CLI has built its own logger.
func getLogger() *zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Str("component", "config").
		Logger()
	return &l
}

// ToLoggingConfig converts the logging section for the logging package.
// A configured file switches the output to "file"; otherwise stderr is used.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
