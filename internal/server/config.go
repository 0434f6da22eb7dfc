package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings loaded from YAML.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// CORSOrigins lists the origins allowed by the CORS middleware.
	// Defaults to all origins.
	CORSOrigins []string `yaml:"cors_origins"`

	// Tables maps table names to CSV file paths preloaded into the
	// base catalog at startup. Queries that do not carry their own
	// csv_data run against these tables.
	Tables map[string]string `yaml:"tables"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		CORSOrigins: []string{"*"},
	}
}

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = DefaultConfig().CORSOrigins
	}
	return cfg, nil
}
