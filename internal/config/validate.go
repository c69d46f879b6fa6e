package config

import (
	"errors"
	"fmt"

	"webpconv/internal/common"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must be set")
	}
	return nil
}

func (c *Config) validateConversion() error {
	q := c.Conversion.DefaultQuality
	if q < common.MinQuality || q > common.MaxQuality {
		return fmt.Errorf("conversion.default_quality must be between %d and %d, got %d", common.MinQuality, common.MaxQuality, q)
	}
	s := c.Conversion.DefaultScale
	if s < common.MinScale || s > common.MaxScale {
		return fmt.Errorf("conversion.default_scale must be between %d and %d, got %d", common.MinScale, common.MaxScale, s)
	}
	if c.Conversion.Workers < 0 {
		return fmt.Errorf("conversion.workers must be zero or positive, got %d", c.Conversion.Workers)
	}
	return nil
}
