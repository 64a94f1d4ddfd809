package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, 2000, cfg.Image.MaxDimension)
	assert.Equal(t, 10, cfg.Stats.RecentCapacity)
	assert.Equal(t, 10, cfg.Stats.TopCount)
	assert.False(t, cfg.Server.RateLimit.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "log_level",
		},
		{
			name:    "port too small",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.TimeoutSec = 0 },
			wantErr: "timeout_sec",
		},
		{
			name:    "zero max dimension",
			mutate:  func(c *Config) { c.Image.MaxDimension = 0 },
			wantErr: "max_dimension",
		},
		{
			name:    "bad background color",
			mutate:  func(c *Config) { c.Image.Background = "red" },
			wantErr: "image.background",
		},
		{
			name:    "bad foreground color",
			mutate:  func(c *Config) { c.Image.Foreground = "#12345" },
			wantErr: "image.foreground",
		},
		{
			name:    "zero recent capacity",
			mutate:  func(c *Config) { c.Stats.RecentCapacity = 0 },
			wantErr: "recent_capacity",
		},
		{
			name:    "zero top count",
			mutate:  func(c *Config) { c.Stats.TopCount = 0 },
			wantErr: "top_count",
		},
		{
			name: "negative rate limit when enabled",
			mutate: func(c *Config) {
				c.Server.RateLimit.Enabled = true
				c.Server.RateLimit.RequestsPerMinute = -1
			},
			wantErr: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 3000
	cfg.Image.Background = "#112233"
	cfg.Stats.RecentCapacity = 25
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.MaxPixelsPerDay = 123456789

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var result Config
	require.NoError(t, yaml.Unmarshal(data, &result))

	assert.Equal(t, *cfg, result)
}

func TestConfig_YAMLFieldNames(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	text := string(data)
	for _, key := range []string{
		"log_level:", "server:", "cors_origin:", "rate_limit:",
		"image:", "max_dimension:", "stats:", "recent_capacity:",
	} {
		assert.Contains(t, text, key)
	}
}
