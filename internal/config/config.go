// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"SERVER_PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Behavior toggles
	MockDB    bool `env:"MOCK_DB" envDefault:"false"`    // Serve canned responses without a database
	DoSeed    bool `env:"DO_SEED" envDefault:"false"`    // Enable database seeding
	LikeDedup bool `env:"LIKE_DEDUP" envDefault:"false"` // Reject repeat blog likes from the same IP

	// AI provider configuration
	AIAPIKey string `env:"AI_API_KEY"`
	AIAPIURL string `env:"AI_API_URL" envDefault:"https://one.apprentice.cyou/api/v1"`
	AIModel  string `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// AIEnabled returns true if an AI provider API key is configured.
func (c Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DatabaseURL == "" && !cfg.MockDB {
		return nil, fmt.Errorf("DATABASE_URL is required unless MOCK_DB=true")
	}

	// Some deployments configure the full chat completions endpoint.
	// The client appends the endpoint path itself, so keep the base URL only.
	cfg.AIAPIURL = strings.TrimSuffix(strings.TrimSuffix(cfg.AIAPIURL, "/"), "/chat/completions")

	return cfg, nil
}
