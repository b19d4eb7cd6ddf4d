// Package config loads lab configuration from a YAML file plus
// TOKENLAB_-prefixed environment overrides. Precedence: built-in
// defaults, then the file, then the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"tokenomics-lab/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr             string   `yaml:"addr"`
	CORSOrigins      []string `yaml:"cors_origins"`
	RunStoreCapacity int      `yaml:"run_store_capacity"`
	OutputDir        string   `yaml:"output_dir"`
	Release          bool     `yaml:"release"`
}

// SimulationConfig overrides the built-in simulation defaults served to
// clients. Pointer fields distinguish "not set" from a meaningful zero:
// a flat market is yearly_price_change_pct 0 and a zero horizon is a
// valid empty run.
type SimulationConfig struct {
	TokenSymbol          string          `yaml:"token_symbol"`
	InitialPrice         float64         `yaml:"initial_price"`
	YearlyPriceChangePct *float64        `yaml:"yearly_price_change_pct"`
	HorizonDays          *int            `yaml:"horizon_days"`
	Services             []ServiceConfig `yaml:"services"`
}

// ServiceConfig is one burn service entry. Order in the file is the
// order burns apply each simulated day.
type ServiceConfig struct {
	Name        string  `yaml:"name"`
	BurnRate    float64 `yaml:"burn_rate"`
	DailyVolume float64 `yaml:"daily_volume"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":8080",
			RunStoreCapacity: 256,
			OutputDir:        "output",
		},
	}
}

// Load reads, merges and validates the config at path.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Restore defaults for fields the file explicitly blanked.
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RunStoreCapacity == 0 {
		c.Server.RunStoreCapacity = 256
	}
	if c.Server.OutputDir == "" {
		c.Server.OutputDir = "output"
	}

	return c, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.RunStoreCapacity < 0 {
		return errors.New("server.run_store_capacity must not be negative")
	}
	// Validate the simulation block by building the domain config.
	if _, err := c.SimulationDefaults(); err != nil {
		return fmt.Errorf("simulation config invalid: %w", err)
	}
	return nil
}

// SimulationDefaults builds the domain configuration served as the
// default to clients: built-in defaults overlaid with the file's
// simulation block.
func (c *Config) SimulationDefaults() (domain.SimulationConfig, error) {
	out := domain.DefaultConfig()

	s := c.Simulation
	if s.TokenSymbol != "" {
		out.TokenSymbol = s.TokenSymbol
	}
	if s.InitialPrice != 0 {
		out.InitialPrice = s.InitialPrice
	}
	if s.YearlyPriceChangePct != nil {
		out.YearlyPriceChangePct = *s.YearlyPriceChangePct
	}
	if s.HorizonDays != nil {
		out.HorizonDays = *s.HorizonDays
	}
	if len(s.Services) > 0 {
		services := make([]domain.Service, 0, len(s.Services))
		for _, svc := range s.Services {
			services = append(services, domain.Service{
				Name:        svc.Name,
				BurnRate:    svc.BurnRate,
				DailyVolume: svc.DailyVolume,
			})
		}
		out.Services = services
	}

	if err := out.Validate(); err != nil {
		return domain.SimulationConfig{}, err
	}
	return out, nil
}
