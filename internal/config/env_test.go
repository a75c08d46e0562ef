package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/voltwise/internal/config"
)

func TestApplyEnv(t *testing.T) {
	isolate(t)

	env := map[string]string{
		config.EnvOutputFormat:   "yaml",
		config.EnvPrecision:      "not-a-number",
		config.EnvHousingType:    "3",
		config.EnvAllowedOrigins: "https://app.example",
		config.EnvRateWindow:     "2m",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Defaults()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "yaml", cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision, "invalid override is skipped")
	assert.Equal(t, "3BHK", cfg.Household.HousingType)
	assert.Equal(t, []string{"https://app.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.Server.RateWindow)
}

func TestNew_EnvBeatsFile(t *testing.T) {
	isolate(t)

	saved := config.Defaults()
	saved.Output.DefaultFormat = "json"
	require.NoError(t, saved.Save())

	t.Setenv(config.EnvOutputFormat, "ndjson")
	assert.Equal(t, "ndjson", config.New().Output.DefaultFormat)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VOLTWISE_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("VOLTWISE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("VOLTWISE_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("VOLTWISE_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(config.EnvLogLevel+"=debug\n"), 0o600))
	t.Setenv(config.EnvLogLevel, "warn")

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "warn", os.Getenv(config.EnvLogLevel))
}
