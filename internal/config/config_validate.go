// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "fmt"

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateSettingFile(); err != nil {
		return err
	}
	if err := c.validateDefaultMaxRetryCount(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAdmin(); err != nil {
		return err
	}
	return c.validateShutdownTimeout()
}

// validateSettingFile requires a non-empty path to the XML service
// catalogue.
func (c *Config) validateSettingFile() error {
	if c.SettingFile == "" {
		return fmt.Errorf("SETTING_FILE is required")
	}
	return nil
}

// validateDefaultMaxRetryCount rejects a negative bootstrap retry default;
// zero is valid and means "fail after the first unexpected exit".
func (c *Config) validateDefaultMaxRetryCount() error {
	if c.DefaultMaxRetryCount < 0 {
		return fmt.Errorf("DEFAULT_MAX_RETRY_COUNT must be >= 0, got %d", c.DefaultMaxRetryCount)
	}
	return nil
}

// validateLogging restricts level/format to the values logger.go actually
// understands.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a recognized zerolog level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"console\", got %q", c.Logging.Format)
	}
	return nil
}

// validateAdmin validates the optional admin HTTP surface. An empty
// ListenAddr disables the surface entirely and skips the remaining checks.
func (c *Config) validateAdmin() error {
	if c.Admin.ListenAddr == "" {
		return nil
	}
	if c.Admin.RateLimitReqs <= 0 {
		return fmt.Errorf("ADMIN_RATE_LIMIT_REQS must be > 0 when the admin surface is enabled, got %d", c.Admin.RateLimitReqs)
	}
	if c.Admin.RateLimitWindow <= 0 {
		return fmt.Errorf("ADMIN_RATE_LIMIT_WINDOW must be > 0 when the admin surface is enabled, got %s", c.Admin.RateLimitWindow)
	}
	return nil
}

// validateShutdownTimeout rejects a non-positive graceful-stop budget; the
// SIGTERM-then-SIGKILL escalation needs a real window to wait in.
func (c *Config) validateShutdownTimeout() error {
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0, got %s", c.ShutdownTimeout)
	}
	return nil
}
