// Package config loads the companion app's map settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the map surface reads at startup.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Grid    GridConfig    `yaml:"grid"`
	Fog     FogConfig     `yaml:"fog"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// GridConfig holds grid defaults applied when a map carries none.
type GridConfig struct {
	CellSize int     `yaml:"cell_size"`
	Opacity  float64 `yaml:"opacity"`
}

// FogConfig holds fog defaults.
type FogConfig struct {
	Enabled    bool `yaml:"enabled"`
	DynamicFog bool `yaml:"dynamic_fog"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "Battle Map",
			VSync:  true,
		},
		Grid: GridConfig{
			CellSize: 50,
			Opacity:  0.25,
		},
		Fog: FogConfig{
			Enabled:    true,
			DynamicFog: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config at path, merged over defaults. A missing file is not
// an error; it just yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
