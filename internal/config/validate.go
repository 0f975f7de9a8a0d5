package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Encoder vocabulary
// (preset ladder, tune modes) is validated where the encode plan is built;
// this covers the structural constraints.
func (c *Config) Validate() error {
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.Quality < 0 || c.Encode.Quality > 51 {
		return fmt.Errorf("encode.quality must be between 0 and 51, got %d", c.Encode.Quality)
	}
	if c.Encode.ScanDuration <= 0 {
		return errors.New("encode.scan_duration must be a positive number of seconds")
	}
	if c.Encode.PixelFormat == "" {
		return errors.New("encode.pixel_format must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
