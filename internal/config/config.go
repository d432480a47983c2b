package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the karios context service.
type Config struct {
	Server  Server  `yaml:"server"`
	Backend Backend `yaml:"backend"`
	Archive Archive `yaml:"archive"`
	Logging Logging `yaml:"logging"`
}

// Server holds network listener configuration.
type Server struct {
	Listen string `yaml:"listen"`
}

// Backend points at the quant-service REST API that reference data is
// fetched from.
type Backend struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Archive configures the optional build-audit store. When disabled, built
// documents are returned to the caller and nothing is persisted.
type Archive struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"` // "sqlite" or "parquet"
	Path    string `yaml:"path"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: the quant service on its
// desktop sidecar port, archive disabled.
func Default() *Config {
	return &Config{
		Server:  Server{Listen: "127.0.0.1:4330"},
		Backend: Backend{BaseURL: "http://127.0.0.1:4320", TimeoutSeconds: 15},
		Archive: Archive{Enabled: false, Driver: "sqlite", Path: "data/context-archive.db"},
		Logging: Logging{Level: "info", Format: "json"},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides. A missing
// file is not an error; defaults plus environment overrides are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, uerr
		}
	case os.IsNotExist(err):
		// Run on defaults.
	default:
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KARIOS_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}

	if v := os.Getenv("KARIOS_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}

	if v := os.Getenv("KARIOS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("KARIOS_ARCHIVE_ENABLED"); v != "" {
		cfg.Archive.Enabled = v == "1" || strings.EqualFold(v, "true")
	}

	if v := os.Getenv("KARIOS_ARCHIVE_DRIVER"); v != "" {
		cfg.Archive.Driver = v
	}

	if v := os.Getenv("KARIOS_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
}
