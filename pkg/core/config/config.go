// Package config reads the calculator service configuration from the
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration. Only RunAddress has a default;
// everything else is optional and disables its feature when empty.
type Config struct {
	RunAddress      string `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURL     string `env:"DATABASE_URL"`
	RedisAddress    string `env:"REDIS_ADDRESS"`
	PostcodeFile    string `env:"POSTCODE_FILE" envDefault:"config/service_area.hjson"`
	AssumptionsFile string `env:"ASSUMPTIONS_FILE"`
}

// Parse reads the configuration from environment variables.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
