// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// When neither is given, configuration is read from environment
// variables alone, with defaults that make the service runnable out of
// the box (in-memory storage, localhost bind).
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted in config. Anything else is a fatal
// misconfiguration at boot.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure. Every field maps to a key
// in the YAML file AND can be overridden by the corresponding
// environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// HTTPServer is embedded so its fields are accessible directly on
	// Config: cfg.HTTPServer.Addr
	HTTPServer `yaml:"http_server"`

	Storage StorageConfig `yaml:"storage"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on.
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// StorageConfig selects and parameterises the storage backend.
type StorageConfig struct {
	// Backend is "memory" (default) or "sqlite".
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory"`

	// Path is the SQLite DSN, only used when Backend is "sqlite".
	// The default is a shared in-memory database, so even the SQLite
	// backend does not persist across restarts unless pointed at a file.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"file:studentreg?mode=memory&cache=shared"`
}

// MustLoad reads, validates, and returns the application config.
//
// The "Must" prefix follows the Go convention: this function fatals on
// failure, so if it returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	var cfg Config

	// No config file — environment variables and defaults only.
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err.Error())
		}
		validateBackend(&cfg)
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	validateBackend(&cfg)
	return &cfg
}

func validateBackend(cfg *Config) {
	switch cfg.Storage.Backend {
	case BackendMemory, BackendSQLite:
	default:
		log.Fatalf("unknown storage backend %q: must be %q or %q",
			cfg.Storage.Backend, BackendMemory, BackendSQLite)
	}
}
