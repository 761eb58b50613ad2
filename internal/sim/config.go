package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives the demo simulation. It configures the world and the
// telemetry endpoints only; tree shapes are fixed in code.
type Config struct {
	World        WorldConfig   `yaml:"world"`
	Scouts       int           `yaml:"scouts"`
	Idlers       int           `yaml:"idlers"`
	TickInterval time.Duration `yaml:"tick_interval"`
	HTTPAddr     string        `yaml:"http_addr"`
	QUICAddr     string        `yaml:"quic_addr"`
}

// WorldConfig sizes and populates the grid.
type WorldConfig struct {
	Width     int   `yaml:"width"`
	Height    int   `yaml:"height"`
	Traps     int   `yaml:"traps"`
	Artifacts int   `yaml:"artifacts"`
	Seed      int64 `yaml:"seed"`
}

// DefaultConfig returns a small playable world.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:     16,
			Height:    16,
			Traps:     10,
			Artifacts: 6,
			Seed:      time.Now().UnixNano(),
		},
		Scouts:       3,
		Idlers:       1,
		TickInterval: 100 * time.Millisecond,
		HTTPAddr:     ":8080",
		QUICAddr:     ":8443",
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	cells := c.World.Width * c.World.Height
	if c.World.Traps+c.World.Artifacts+1 > cells {
		return fmt.Errorf("world too small: %d cells for %d traps, %d artifacts and an exit",
			cells, c.World.Traps, c.World.Artifacts)
	}
	if c.Scouts < 0 || c.Idlers < 0 {
		return fmt.Errorf("agent counts cannot be negative")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	return nil
}
