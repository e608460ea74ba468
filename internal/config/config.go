// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package config loads Recipe Helper configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// The only required setting is the Spoonacular API key
// (SPOONACULAR_API_KEY or spoonacular.api_key in the YAML file).
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Spoonacular SpoonacularConfig `koanf:"spoonacular"`
	Database    DatabaseConfig    `koanf:"database"`
	Cache       CacheConfig       `koanf:"cache"`
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// SpoonacularConfig holds recipe API client settings.
type SpoonacularConfig struct {
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`     // Must end with "/recipes/"
	Timeout     time.Duration `koanf:"timeout"`      // Per-request HTTP timeout
	ResultLimit int           `koanf:"result_limit"` // "number" parameter of findByIngredients
	RateLimit   float64       `koanf:"rate_limit"`   // Outbound requests per second
	RateBurst   int           `koanf:"rate_burst"`
	MaxRetries  int           `koanf:"max_retries"` // Retries on HTTP 429
}

// DatabaseConfig holds DuckDB settings for the favorites store.
type DatabaseConfig struct {
	Path      string `koanf:"path"` // ":memory:" for an ephemeral store
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// CacheConfig holds the recipe details cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Path       string        `koanf:"path"`
	TTL        time.Duration `koanf:"ttl"`
	InMemory   bool          `koanf:"in_memory"`   // Badger in-memory mode, nothing written to Path
	GCInterval time.Duration `koanf:"gc_interval"` // Value log GC period
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
func Load() (*Config, error) {
	return LoadWithKoanf()
}
