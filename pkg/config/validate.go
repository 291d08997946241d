// Package config loads and validates service configuration.
package config

import (
	"fmt"

	apperrors "auwalk/pkg/errors"
	"auwalk/pkg/validator"
)

// ValidateProbe ensures the probe target and both credential sets are usable.
func (c *Config) ValidateProbe() error {
	v := validator.New()
	if err := v.Validate(&c.Probe); err != nil {
		return apperrors.Mark(err, apperrors.ErrInvalidConfig)
	}
	if c.History.RedisURL != "" {
		if err := v.Validate(&c.History); err != nil {
			return apperrors.Mark(err, apperrors.ErrInvalidConfig)
		}
	}
	return c.validateLog(v)
}

// ValidateServer ensures the stub auth server can start.
func (c *Config) ValidateServer() error {
	v := validator.New()
	if err := v.Validate(&c.Server); err != nil {
		return apperrors.Mark(err, apperrors.ErrInvalidConfig)
	}
	if err := v.Validate(&c.JWT); err != nil {
		return apperrors.Mark(err, apperrors.ErrInvalidConfig)
	}
	return c.validateLog(v)
}

func (c *Config) validateLog(v *validator.Validator) error {
	if err := v.Validate(&c.Log); err != nil {
		return apperrors.Mark(fmt.Errorf("LOG_LEVEL %q: %w", c.Log.Level, err), apperrors.ErrInvalidConfig)
	}
	return nil
}
