package config

// Config represents the complete configuration for the mailcheck
// application. It includes settings for all commands (decode, validate,
// serve) and supports loading from configuration files, environment
// variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Barcode canonicalization policy
	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// CSV batch validation configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DecodeConfig controls how raw barcode strings are canonicalized before
// decoding. By default lowercase input is accepted and surrounding
// whitespace is rejected.
type DecodeConfig struct {
	CaseSensitive  bool `mapstructure:"case_sensitive" yaml:"case_sensitive" json:"case_sensitive"`
	TrimWhitespace bool `mapstructure:"trim_whitespace" yaml:"trim_whitespace" json:"trim_whitespace"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// BatchConfig contains CSV batch validation settings. Empty column names
// enable header-based discovery.
type BatchConfig struct {
	Workers   int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	IMBColumn string `mapstructure:"imb_column" yaml:"imb_column" json:"imb_column"`
	ZipColumn string `mapstructure:"zip_column" yaml:"zip_column" json:"zip_column"`
	Encoding  string `mapstructure:"encoding" yaml:"encoding" json:"encoding"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string          `mapstructure:"host" yaml:"host" json:"host"`
	Port            int             `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string          `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int             `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int             `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int             `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig contains request rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int  `mapstructure:"burst_size" yaml:"burst_size" json:"burst_size"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Decode: DecodeConfig{
			CaseSensitive:  false,
			TrimWhitespace: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Workers:  4,
			Encoding: "auto",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 120,
				BurstSize:         20,
			},
		},
	}
}
