package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
//	    MaxQuantity int    `env:"MAX_QUANTITY" envDefault:"100"`
//	}
func Load(cfg any) error {
	return LoadWithPrefix(cfg, "")
}

// LoadWithPrefix is Load with every variable name prefixed, so that
// `env:"LOG_LEVEL"` with prefix "CARTSIM_" reads CARTSIM_LOG_LEVEL.
func LoadWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
