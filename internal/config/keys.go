package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/voltwise/internal/estimator"
)

// field binds a dotted key such as "output.precision" to a Config value.
type field struct {
	get func(c *Config) string
	set func(c *Config, value string) error
}

//nolint:gochecknoglobals // Immutable key table.
var fields = map[string]field{
	"version": {
		get: func(c *Config) string { return c.Version },
		set: func(c *Config, v string) error { c.Version = v; return nil },
	},
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = strings.ToLower(v); return nil },
	},
	"output.precision": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.Precision) },
		set: func(c *Config, v string) error { return setInt(&c.Output.Precision, v) },
	},
	"output.co2_unit": {
		get: func(c *Config) string { return c.Output.CO2Unit },
		set: func(c *Config, v string) error { c.Output.CO2Unit = v; return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = strings.ToLower(v); return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = strings.ToLower(v); return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
	"household.housing_type": {
		get: func(c *Config) string { return c.Household.HousingType },
		set: func(c *Config, v string) error {
			h, err := estimator.ParseHousingType(v)
			if err != nil {
				return err
			}
			c.Household.HousingType = h.String()
			return nil
		},
	},
	"household.air_conditioner": {
		get: func(c *Config) string { return strconv.FormatBool(c.Household.AirConditioner) },
		set: func(c *Config, v string) error { return setBool(&c.Household.AirConditioner, v) },
	},
	"household.refrigerator": {
		get: func(c *Config) string { return strconv.FormatBool(c.Household.Refrigerator) },
		set: func(c *Config, v string) error { return setBool(&c.Household.Refrigerator, v) },
	},
	"household.washing_machine": {
		get: func(c *Config) string { return strconv.FormatBool(c.Household.WashingMachine) },
		set: func(c *Config, v string) error { return setBool(&c.Household.WashingMachine, v) },
	},
	"server.address": {
		get: func(c *Config) string { return c.Server.Address },
		set: func(c *Config, v string) error { c.Server.Address = v; return nil },
	},
	"server.allowed_origins": {
		get: func(c *Config) string { return strings.Join(c.Server.AllowedOrigins, ",") },
		set: func(c *Config, v string) error { c.Server.AllowedOrigins = splitList(v); return nil },
	},
	"server.rate_limit": {
		get: func(c *Config) string { return strconv.Itoa(c.Server.RateLimit) },
		set: func(c *Config, v string) error { return setInt(&c.Server.RateLimit, v) },
	},
	"server.rate_window": {
		get: func(c *Config) string { return c.Server.RateWindow.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", v, err)
			}
			c.Server.RateWindow = d
			return nil
		},
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the string form of a dotted key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the dotted key. The result is not validated; call
// Validate before saving.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := f.set(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// KeyValue is one line of List output.
type KeyValue struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// List returns every key with its current value, sorted by key.
func (c *Config) List() []KeyValue {
	keys := Keys()
	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: k, Value: fields[k].get(c)})
	}
	return out
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", v, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := estimator.ParseYesNo(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
