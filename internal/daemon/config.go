// Package daemon manages the Gearline daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gearline/gearline/internal/sim/catalog"
	"github.com/gearline/gearline/internal/sim/kinetic"
)

// Config holds all daemon configuration.
type Config struct {
	Sim       SimConfig       `toml:"sim"`
	API       APIConfig       `toml:"api"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// SimConfig fixes the simulation parameters. No runtime reconfiguration.
type SimConfig struct {
	TickMS     int     `toml:"tick_ms"`     // tick period in milliseconds
	ScanRadius int     `toml:"scan_radius"` // cube half-extent in blocks
	MotorSpeed float64 `toml:"motor_speed"` // nominal motor speed
	SpeedUnit  float64 `toml:"speed_unit"`  // base stress/speed unit
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Sim: SimConfig{
			TickMS:     250,
			ScanRadius: 32,
			MotorSpeed: catalog.DefaultMotorSpeed,
			SpeedUnit:  kinetic.DefaultSpeedUnit,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7433,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads config from $GEARLINE_HOME/config.toml, falling back
// to defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(gearlineHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to $GEARLINE_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(gearlineHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// gearlineHome returns the Gearline data directory.
func gearlineHome() string {
	if env := os.Getenv("GEARLINE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gearline")
}

// GearlineHome is exported for use by other packages.
func GearlineHome() string {
	return gearlineHome()
}
