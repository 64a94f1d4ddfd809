// Package config provides layered configuration for the placepix service:
// defaults, an optional YAML file, PLACEPIX_* environment variables and
// command-line flags, resolved through viper.
package config

import (
	"fmt"

	"github.com/placepix/placepix/internal/imager"
)

// Config is the complete configuration for the placepix application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Server configuration (for the serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Placeholder image appearance and limits
	Image ImageConfig `mapstructure:"image" yaml:"image" json:"image"`

	// Stats aggregation settings
	Stats StatsConfig `mapstructure:"stats" yaml:"stats" json:"stats"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string          `mapstructure:"host" yaml:"host" json:"host"`
	Port            int             `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string          `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSec      int             `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int             `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig contains per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool  `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	RequestsPerHour   int   `mapstructure:"requests_per_hour" yaml:"requests_per_hour" json:"requests_per_hour"`
	MaxImagesPerDay   int64 `mapstructure:"max_images_per_day" yaml:"max_images_per_day" json:"max_images_per_day"`
	MaxPixelsPerDay   int64 `mapstructure:"max_pixels_per_day" yaml:"max_pixels_per_day" json:"max_pixels_per_day"`
}

// ImageConfig contains placeholder rendering settings.
type ImageConfig struct {
	MaxDimension int    `mapstructure:"max_dimension" yaml:"max_dimension" json:"max_dimension"`
	Background   string `mapstructure:"background" yaml:"background" json:"background"`
	Foreground   string `mapstructure:"foreground" yaml:"foreground" json:"foreground"`
}

// StatsConfig contains stats aggregation settings.
type StatsConfig struct {
	RecentCapacity  int `mapstructure:"recent_capacity" yaml:"recent_capacity" json:"recent_capacity"`
	TopCount        int `mapstructure:"top_count" yaml:"top_count" json:"top_count"`
	LiveIntervalSec int `mapstructure:"live_interval_sec" yaml:"live_interval_sec" json:"live_interval_sec"`
}

// DefaultConfig returns a configuration with all default values set.
func DefaultConfig() *Config {
	palette := imager.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 120,
				RequestsPerHour:   2000,
				MaxImagesPerDay:   10000,
				MaxPixelsPerDay:   4_000_000_000,
			},
		},
		Image: ImageConfig{
			MaxDimension: 2000,
			Background:   palette.Background,
			Foreground:   palette.Foreground,
		},
		Stats: StatsConfig{
			RecentCapacity:  10,
			TopCount:        10,
			LiveIntervalSec: 2,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server.timeout_sec %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid server.shutdown_timeout %d (must be positive)", c.Server.ShutdownTimeout)
	}

	if c.Image.MaxDimension <= 0 {
		return fmt.Errorf("invalid image.max_dimension %d (must be positive)", c.Image.MaxDimension)
	}
	if imager.ParseHexColor(c.Image.Background) == nil {
		return fmt.Errorf("invalid image.background %q (must be a hex color like #EEEEEE)", c.Image.Background)
	}
	if imager.ParseHexColor(c.Image.Foreground) == nil {
		return fmt.Errorf("invalid image.foreground %q (must be a hex color like #AAAAAA)", c.Image.Foreground)
	}

	if c.Stats.RecentCapacity <= 0 {
		return fmt.Errorf("invalid stats.recent_capacity %d (must be positive)", c.Stats.RecentCapacity)
	}
	if c.Stats.TopCount <= 0 {
		return fmt.Errorf("invalid stats.top_count %d (must be positive)", c.Stats.TopCount)
	}
	if c.Stats.LiveIntervalSec <= 0 {
		return fmt.Errorf("invalid stats.live_interval_sec %d (must be positive)", c.Stats.LiveIntervalSec)
	}

	rl := c.Server.RateLimit
	if rl.Enabled {
		if rl.RequestsPerMinute < 0 || rl.RequestsPerHour < 0 || rl.MaxImagesPerDay < 0 || rl.MaxPixelsPerDay < 0 {
			return fmt.Errorf("rate limit values must not be negative")
		}
	}

	return nil
}
