// Package config loads application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/copperhead-cup/cup-bot/app/shared/observability"
)

// Config holds the configuration settings.
type Config struct {
	Postgres      PostgresConfig       `yaml:"postgres"`
	NATS          NATSConfig           `yaml:"nats"`
	HTTP          HTTPConfig           `yaml:"http"`
	Observability observability.Config `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error; configuration then comes entirely from environment variables.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (config file or DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL not set (config file or NATS_URL)")
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}

	return &cfg, nil
}
