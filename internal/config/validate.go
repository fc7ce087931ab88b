package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateAccounts(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.BaseURL != "" {
		parsed, err := url.Parse(c.Media.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("media.base_url %q is not an absolute URL", c.Media.BaseURL)
		}
	}
	if c.Media.RequestTimeout <= 0 {
		return errors.New("media.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateAccounts() error {
	if c.Accounts.GraceDays < 0 {
		return errors.New("accounts.grace_days must not be negative")
	}
	if c.Accounts.SweepIntervalHours <= 0 {
		return errors.New("accounts.sweep_interval_hours must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	return nil
}
