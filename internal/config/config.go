// Package config loads, validates and persists voltwise settings.
//
// Settings come from three layers, later layers winning: built-in defaults,
// the global $VOLTWISE_HOME/config.yaml and a project-local .voltwise.yaml,
// then VOLTWISE_* environment variables (optionally seeded from a .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/greenops"
)

// CurrentVersion is written by Save and accepted by SupportedVersions.
const CurrentVersion = "1.0.0"

// SupportedVersions is the semver constraint a config file version must meet.
const SupportedVersions = "^1"

// Output formats accepted in output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"
	maxPrecision   = 10

	defaultServerAddress = ":8080"
	defaultRateLimit     = 60
	defaultRateWindow    = time.Minute
)

// Validation errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidPrecision   = errors.New("invalid output precision")
	ErrInvalidCO2Unit     = errors.New("invalid co2 unit")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidServer      = errors.New("invalid server settings")
	ErrUnknownKey         = errors.New("unknown configuration key")
)

// Config is the full voltwise configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Household HouseholdConfig `yaml:"household"`
	Server    ServerConfig    `yaml:"server"`

	configPath string
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
	CO2Unit       string `yaml:"co2_unit"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// HouseholdConfig is the profile used when a command is given no housing flags.
type HouseholdConfig struct {
	HousingType    string `yaml:"housing_type"`
	AirConditioner bool   `yaml:"air_conditioner"`
	Refrigerator   bool   `yaml:"refrigerator"`
	WashingMachine bool   `yaml:"washing_machine"`
}

// Profile converts the configured household into an estimator profile.
func (h HouseholdConfig) Profile() (estimator.HouseholdProfile, error) {
	housing, err := estimator.ParseHousingType(h.HousingType)
	if err != nil {
		return estimator.HouseholdProfile{}, err
	}
	return estimator.HouseholdProfile{
		HousingType:       housing,
		HasAirConditioner: h.AirConditioner,
		HasRefrigerator:   h.Refrigerator,
		HasWashingMachine: h.WashingMachine,
	}, nil
}

// ServerConfig configures `voltwise serve`.
type ServerConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RateLimit      int           `yaml:"rate_limit"`
	RateWindow     time.Duration `yaml:"rate_window"`
}

// Defaults returns the built-in configuration without reading any file.
func Defaults() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		configDir = "."
	}

	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
			CO2Unit:       "kg",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Household: HouseholdConfig{
			HousingType: estimator.OneBHK.String(),
		},
		Server: ServerConfig{
			Address:        defaultServerAddress,
			AllowedOrigins: []string{"*"},
			RateLimit:      defaultRateLimit,
			RateWindow:     defaultRateWindow,
		},
		configPath: filepath.Join(configDir, configFileName),
	}
}

// New returns the defaults overlaid with the global config file, if any, and
// VOLTWISE_* environment variables. A broken config file is reported on the
// global logger and otherwise ignored.
func New() *Config {
	cfg := Defaults()
	if err := cfg.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		getLogger().Warn().Err(err).Str("path", cfg.configPath).Msg("ignoring unreadable config file")
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// ConfigPath returns the file Load and Save use.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Load and Save use.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file on top of the current values. A missing file
// yields an error wrapping os.ErrNotExist.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", c.configPath, err)
	}

	path := c.configPath
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Save writes the configuration to ConfigPath, creating parent directories.
func (c *Config) Save() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	if !slices.Contains(OutputFormats(), c.Output.DefaultFormat) {
		return fmt.Errorf("%w: %q (expected one of %s)",
			ErrInvalidFormat, c.Output.DefaultFormat, strings.Join(OutputFormats(), ", "))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: %d (expected 0..%d)", ErrInvalidPrecision, c.Output.Precision, maxPrecision)
	}
	if !greenops.IsRecognizedUnit(c.Output.CO2Unit) {
		return fmt.Errorf("%w: %q", ErrInvalidCO2Unit, c.Output.CO2Unit)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if _, err := c.Household.Profile(); err != nil {
		return fmt.Errorf("household: %w", err)
	}

	return c.Server.Validate()
}

// Validate checks the server section. The serve command calls it again after
// applying flag overrides.
func (s ServerConfig) Validate() error {
	if s.Address == "" {
		return fmt.Errorf("%w: address must not be empty", ErrInvalidServer)
	}
	if s.RateLimit <= 0 || s.RateWindow <= 0 {
		return fmt.Errorf("%w: rate_limit and rate_window must be positive", ErrInvalidServer)
	}
	return nil
}

func validateVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

// OutputFormats lists the accepted output formats.
func OutputFormats() []string {
	return []string{FormatTable, FormatJSON, FormatNDJSON, FormatYAML}
}
