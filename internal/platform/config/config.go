// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto typed settings with
caarlos0/env.

Two shapes exist: [Config] for the API server, where storage and signing keys
are required, and [ToolConfig] for the operator CLI, where they are optional.
Both share [ImgurConfig] under the IMGUR_ prefix.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomira API server.
type Config struct {
	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"25"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Imgur album import
	Imgur ImgurConfig `envPrefix:"IMGUR_"`

	// ImportLockTTL bounds how long a chapter stays locked by a crashed import.
	ImportLockTTL time.Duration `env:"IMPORT_LOCK_TTL" envDefault:"60s"`
}

// ImgurConfig configures the outbound album fetcher.
type ImgurConfig struct {
	BaseURL    string        `env:"BASE_URL"    envDefault:"https://imgur.com"`
	UserAgent  string        `env:"USER_AGENT"  envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"2"`
}

// ToolConfig is the reduced configuration used by the operator CLI. Storage
// settings are optional because classify and extract never touch a database.
type ToolConfig struct {
	Debug         bool          `env:"DEBUG"           envDefault:"false"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	MigrationPath string        `env:"MIGRATION_PATH"  envDefault:"./data/migrations"`
	RedisURL      string        `env:"REDIS_URL"`
	Imgur         ImgurConfig   `envPrefix:"IMGUR_"`
	ImportLockTTL time.Duration `env:"IMPORT_LOCK_TTL" envDefault:"60s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails when a field tagged required is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Imgur.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadTool parses the environment for the operator CLI.
func LoadTool() (*ToolConfig, error) {
	cfg := &ToolConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Imgur.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// validate fills zero values left by an explicitly empty variable and
// rejects values the fetcher cannot work with.
func (c *ImgurConfig) validate() error {
	if c.BaseURL == "" {
		c.BaseURL = constants.ImgurBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = constants.ImgurUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = constants.ImgurTimeout
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: IMGUR_MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
