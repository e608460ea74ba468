// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateSpoonacular(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSpoonacular validates the recipe API client configuration
func (c *Config) validateSpoonacular() error {
	if strings.TrimSpace(c.Spoonacular.APIKey) == "" {
		return fmt.Errorf("SPOONACULAR_API_KEY is required")
	}

	u, err := url.Parse(c.Spoonacular.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SPOONACULAR_BASE_URL must be an absolute URL, got %q", c.Spoonacular.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("SPOONACULAR_BASE_URL must use http or https")
	}
	if !strings.HasSuffix(c.Spoonacular.BaseURL, "/") {
		return fmt.Errorf("SPOONACULAR_BASE_URL must end with a slash")
	}

	if c.Spoonacular.Timeout <= 0 {
		return fmt.Errorf("SPOONACULAR_TIMEOUT must be positive")
	}
	if c.Spoonacular.ResultLimit < 1 || c.Spoonacular.ResultLimit > 100 {
		return fmt.Errorf("SPOONACULAR_RESULT_LIMIT must be between 1 and 100")
	}
	if c.Spoonacular.RateLimit <= 0 {
		return fmt.Errorf("SPOONACULAR_RATE_LIMIT must be positive")
	}
	if c.Spoonacular.RateBurst < 1 {
		return fmt.Errorf("SPOONACULAR_RATE_BURST must be at least 1")
	}
	if c.Spoonacular.MaxRetries < 0 {
		return fmt.Errorf("SPOONACULAR_MAX_RETRIES must not be negative")
	}
	return nil
}

// validateDatabase validates the favorites store configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

// validateCache validates the recipe details cache configuration
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required when CACHE_ENABLED=true")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.GCInterval <= 0 {
		return fmt.Errorf("CACHE_GC_INTERVAL must be positive")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates inbound rate limiting bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
