// Package config provides YAML configuration loading for the simulation
// binary. A missing file yields the defaults; a malformed file is an error.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/anthive/internal/colony"
	"github.com/talgya/anthive/internal/world"
)

// Config contains all runtime settings.
type Config struct {
	// Seed drives world generation and every stochastic agent decision.
	// 0 picks a random seed at startup.
	Seed int64 `yaml:"seed"`

	// TickHz is the simulation cadence in ticks per second.
	TickHz int `yaml:"tick_hz"`

	// APIPort is the HTTP listen port. 0 disables the server.
	APIPort int `yaml:"api_port"`

	// AdminKey is the bearer token for command endpoints. Supports ${VAR}
	// expansion. Empty disables commands over HTTP.
	AdminKey string `yaml:"admin_key,omitempty"`

	// DBPath is the SQLite journal location. Empty disables journaling.
	DBPath string `yaml:"db_path,omitempty"`

	// RandomOrgKey enables the true-randomness source when set.
	RandomOrgKey string `yaml:"random_org_key,omitempty"`

	World  world.GenConfig `yaml:"world"`
	Colony colony.Config   `yaml:"colony"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Seed:    0,
		TickHz:  10,
		APIPort: 8080,
		DBPath:  "data/anthive.db",
		World:   world.DefaultGenConfig(),
		Colony:  colony.DefaultConfig(),
	}
}

// Load reads the config file at path, layered over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.AdminKey = os.ExpandEnv(cfg.AdminKey)
	cfg.RandomOrgKey = os.ExpandEnv(cfg.RandomOrgKey)

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TickHz <= 0 {
		return fmt.Errorf("tick_hz must be positive, got %d", c.TickHz)
	}
	if c.World.Width < 2 || c.World.Depth < 2 {
		return fmt.Errorf("world grid %dx%d too small", c.World.Width, c.World.Depth)
	}
	if c.Colony.MaxAnts < 1 {
		return fmt.Errorf("max_ants must be at least 1, got %d", c.Colony.MaxAnts)
	}
	sum := 0.0
	for _, r := range c.Colony.Ratios {
		if r < 0 {
			return errors.New("role ratios must be non-negative")
		}
		sum += r
	}
	if sum == 0 {
		return errors.New("role ratios must not all be zero")
	}
	return nil
}
