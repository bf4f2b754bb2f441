package config

import (
	"strings"
	"testing"
)

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := DefaultConfig()
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() rejected log level %q: %v", level, err)
		}
	}

	cfg := DefaultConfig()
	cfg.LogLevel = "trace"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() accepted invalid log level")
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"", "text", "json", "csv", "yaml"} {
		cfg := DefaultConfig()
		cfg.Output.Format = format
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() rejected output format %q: %v", format, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted invalid output format")
	}
}

func TestValidateBatchEncoding(t *testing.T) {
	for _, enc := range []string{"", "auto", "utf-8", "windows-1252"} {
		cfg := DefaultConfig()
		cfg.Batch.Encoding = enc
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() rejected encoding %q: %v", enc, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Batch.Encoding = "latin-5"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted invalid encoding")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch workers", func(c *Config) { c.Batch.Workers = 0 }},
		{"negative batch workers", func(c *Config) { c.Batch.Workers = -1 }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSec = 0 }},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"rate limit enabled without rate", func(c *Config) {
			c.Server.RateLimit.Enabled = true
			c.Server.RateLimit.RequestsPerMinute = 0
		}},
		{"rate limit enabled without burst", func(c *Config) {
			c.Server.RateLimit.Enabled = true
			c.Server.RateLimit.BurstSize = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid configuration")
			}
		})
	}
}

func TestValidateRateLimitDisabledSkipsChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.RateLimit.Enabled = false
	cfg.Server.RateLimit.RequestsPerMinute = 0
	cfg.Server.RateLimit.BurstSize = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() checked rate limit values while disabled: %v", err)
	}
}
