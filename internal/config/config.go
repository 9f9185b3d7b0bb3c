package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	ListenAddress string `yaml:"listen_address"` // host:port for the HTTP API
	GridWidth     int    `yaml:"grid_width"`
	GridHeight    int    `yaml:"grid_height"`
	CampDepth     int    `yaml:"camp_depth"` // columns each camp extends from its board edge
	SpecDir       string `yaml:"spec_dir"`   // directory holding units.json / terrain.json
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		ListenAddress: "localhost:8080",
		GridWidth:     20,
		GridHeight:    20,
		CampDepth:     4,
		SpecDir:       "config",
	}
}

// Load reads a YAML config file, layering it over the defaults. A missing
// file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
