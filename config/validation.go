package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that every value the server cannot run without is set.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "jwt secret is required"}.Error())
	}
	if cfg.DBPassword == "" {
		errs = append(errs, ValidationError{"DB_PASSWORD", "database password is required"}.Error())
	}
	if cfg.DBUser == "" {
		errs = append(errs, ValidationError{"DB_USER", "database user is required"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "database name is required"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
