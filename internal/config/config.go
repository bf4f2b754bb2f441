package config

import (
	"fmt"
	"strings"

	"github.com/postpros/mailcheck/internal/imb"
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	validEncodings := []string{"auto", "utf-8", "windows-1252"}
	if c.Batch.Encoding != "" && !contains(validEncodings, c.Batch.Encoding) {
		return fmt.Errorf("invalid batch encoding: %s (must be one of: %s)", c.Batch.Encoding, strings.Join(validEncodings, ", "))
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %d (must be positive)", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("invalid rate limit: %d requests per minute (must be positive)", c.Server.RateLimit.RequestsPerMinute)
		}
		if c.Server.RateLimit.BurstSize <= 0 {
			return fmt.Errorf("invalid rate limit burst size: %d (must be positive)", c.Server.RateLimit.BurstSize)
		}
	}

	return nil
}

// ToDecodeOptions converts the canonicalization settings to decoder options.
func (c *Config) ToDecodeOptions() imb.Options {
	return imb.Options{
		CaseSensitive:  c.Decode.CaseSensitive,
		TrimWhitespace: c.Decode.TrimWhitespace,
	}
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
