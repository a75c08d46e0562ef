package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvHome           = "VOLTWISE_HOME"
	EnvProjectDir     = "VOLTWISE_PROJECT_DIR"
	EnvOutputFormat   = "VOLTWISE_OUTPUT_FORMAT"
	EnvPrecision      = "VOLTWISE_PRECISION"
	EnvCO2Unit        = "VOLTWISE_CO2_UNIT"
	EnvLogLevel       = "VOLTWISE_LOG_LEVEL"
	EnvLogFormat      = "VOLTWISE_LOG_FORMAT"
	EnvLogFile        = "VOLTWISE_LOG_FILE"
	EnvHousingType    = "VOLTWISE_HOUSING_TYPE"
	EnvServerAddress  = "VOLTWISE_SERVER_ADDRESS"
	EnvAllowedOrigins = "VOLTWISE_ALLOWED_ORIGINS"
	EnvRateLimit      = "VOLTWISE_RATE_LIMIT"
	EnvRateWindow     = "VOLTWISE_RATE_WINDOW"
)

//nolint:gochecknoglobals // Immutable env-to-key table.
var envKeys = []struct{ env, key string }{
	{EnvOutputFormat, "output.default_format"},
	{EnvPrecision, "output.precision"},
	{EnvCO2Unit, "output.co2_unit"},
	{EnvLogLevel, "logging.level"},
	{EnvLogFormat, "logging.format"},
	{EnvLogFile, "logging.file"},
	{EnvHousingType, "household.housing_type"},
	{EnvServerAddress, "server.address"},
	{EnvAllowedOrigins, "server.allowed_origins"},
	{EnvRateLimit, "server.rate_limit"},
	{EnvRateWindow, "server.rate_window"},
}

// ApplyEnv overrides settings from VOLTWISE_* variables found by lookup.
// Values that fail to parse are logged and skipped.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, ek := range envKeys {
		v, ok := lookup(ek.env)
		if !ok || v == "" {
			continue
		}
		if err := c.Set(ek.key, v); err != nil {
			getLogger().Warn().Err(err).Str("env", ek.env).Msg("ignoring invalid environment override")
		}
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
