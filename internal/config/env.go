package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds raw environment values. Every variable is optional;
// only set variables override the merged file config.
type envOverrides struct {
	ConfigFile       string   `env:"TOKENLAB_CONFIG_FILE"`
	Addr             string   `env:"TOKENLAB_ADDR"`
	CORSOrigins      []string `env:"TOKENLAB_CORS_ORIGINS" envSeparator:","`
	RunStoreCapacity int      `env:"TOKENLAB_RUN_STORE_CAPACITY"`
	OutputDir        string   `env:"TOKENLAB_OUTPUT_DIR"`
	Release          bool     `env:"TOKENLAB_RELEASE"`
	TokenSymbol      string   `env:"TOKENLAB_TOKEN_SYMBOL"`
}

// LoadFromEnv builds the effective configuration: built-in defaults,
// then the YAML file named by TOKENLAB_CONFIG_FILE (if set), then
// environment overrides. An explicit path argument wins over the
// environment's file path.
func LoadFromEnv(path string) (*Config, error) {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if path == "" {
		path = raw.ConfigFile
	}

	var c *Config
	if path != "" {
		loaded, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	} else {
		c = Default()
	}

	applyEnv(c, raw)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyEnv overlays set environment values onto c.
func applyEnv(c *Config, raw envOverrides) {
	if raw.Addr != "" {
		c.Server.Addr = raw.Addr
	}
	if origins := trimCSV(raw.CORSOrigins); len(origins) > 0 {
		c.Server.CORSOrigins = origins
	}
	if raw.RunStoreCapacity > 0 {
		c.Server.RunStoreCapacity = raw.RunStoreCapacity
	}
	if raw.OutputDir != "" {
		c.Server.OutputDir = raw.OutputDir
	}
	if raw.Release {
		c.Server.Release = true
	}
	if raw.TokenSymbol != "" {
		c.Simulation.TokenSymbol = raw.TokenSymbol
	}
}

// trimCSV removes empty entries from a CSV-split slice.
func trimCSV(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
