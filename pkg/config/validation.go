package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against its struct validation tags and
// cross-field rules the tags cannot express.
//
// Validation never mutates the configuration: normalization (such as
// uppercasing log levels) is the job of ApplyDefaults.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no collector endpoint is configured")
	}

	if cfg.Avatar.Enabled && cfg.Avatar.Bucket == "" {
		return fmt.Errorf("avatar storage is enabled but no bucket is configured")
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	return nil
}
