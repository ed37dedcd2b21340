package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and fall back to Default.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr" envconfig:"ADDR"`
	ModelDir     string   `json:"model_dir" yaml:"model_dir" toml:"model_dir" envconfig:"MODEL_DIR"`
	DatabasePath string   `json:"database_path" yaml:"database_path" toml:"database_path" envconfig:"DATABASE_PATH"`
	DatabaseURL  string   `json:"database_url" yaml:"database_url" toml:"database_url" envconfig:"DATABASE_URL"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level" envconfig:"LOG_LEVEL"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
	CORSEnabled  *bool    `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" envconfig:"CORS_ENABLED"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" envconfig:"CORS_ORIGINS"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:         ":8080",
		ModelDir:     "model",
		DatabasePath: "predictions.db",
		LogLevel:     "info",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FromEnv builds the effective configuration: defaults, then the optional
// file named by SEARCHD_CONFIG, then SEARCHD_* environment overrides. The
// bare DATABASE_URL variable is honored too, matching the deploy convention
// of hosting platforms that inject it.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv("SEARCHD_CONFIG"); path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}
	if err := envconfig.Process("searchd", &cfg); err != nil {
		return cfg, fmt.Errorf("env config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// StoreTarget returns what to hand internal/store: the database URL when
// set, else the local SQLite path.
func (c Config) StoreTarget() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

// CORS reports whether cross-origin requests are allowed. Unset means no,
// and any later layer (file, then env) can still flip it either way.
func (c Config) CORS() bool { return c.CORSEnabled != nil && *c.CORSEnabled }

// merge overlays set fields of over onto base.
func merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.ModelDir != "" {
		base.ModelDir = over.ModelDir
	}
	if over.DatabasePath != "" {
		base.DatabasePath = over.DatabasePath
	}
	if over.DatabaseURL != "" {
		base.DatabaseURL = over.DatabaseURL
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.MaxBodyBytes != 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.CORSEnabled != nil {
		base.CORSEnabled = over.CORSEnabled
	}
	if len(over.CORSOrigins) != 0 {
		base.CORSOrigins = over.CORSOrigins
	}
	return base
}
