// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"PORTFOLIO_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"PORTFOLIO_CACHE_PREFIX" envDefault:"pf:"`     // Redis key prefix
	CacheTTL     int    `env:"PORTFOLIO_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"PORTFOLIO_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Rate limiting for the public contact endpoint
	ContactRateLimit int `env:"PORTFOLIO_CONTACT_RATE_LIMIT" envDefault:"5"` // Submissions per hour per IP

	// GeoIP configuration
	GeoIPDBPath string `env:"PORTFOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Scheduled publishing
	SchedulerEnabled bool `env:"PORTFOLIO_SCHEDULER_ENABLED" envDefault:"true"`

	// Seeding configuration
	DoSeed bool `env:"PORTFOLIO_DO_SEED" envDefault:"true"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("PORTFOLIO_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.ContactRateLimit < 1 {
		return nil, fmt.Errorf("PORTFOLIO_CONTACT_RATE_LIMIT must be positive, got %d", cfg.ContactRateLimit)
	}

	return cfg, nil
}
