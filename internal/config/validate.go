package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScheduler(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScheduler() error {
	if c.Scheduler.MaxConcurrent < 1 {
		return errors.New("scheduler.max_concurrent must be at least 1")
	}
	if c.Scheduler.MaxConcurrent > 100 {
		return errors.New("scheduler.max_concurrent must not exceed 100")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.VisibilityThreshold <= 0 || c.Scan.VisibilityThreshold > 1 {
		return errors.New("scan.visibility_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateSource() error {
	parsed, err := url.Parse(c.Source.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("source.base_url %q is not a valid absolute URL", c.Source.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
