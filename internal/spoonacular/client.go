// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
)

const (
	endpointSearch      = "findByIngredients"
	endpointInformation = "information"

	// maxErrorBodySize limits how much of an error response is kept
	maxErrorBodySize = 64 * 1024
)

// StatusError is returned when Spoonacular answers with a non-200 status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsClientError reports whether the upstream rejected the request itself
// (4xx other than 429), as opposed to being unavailable.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// searchHit is one element of the findByIngredients response array.
type searchHit struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// informationResponse is the subset of the information payload we map.
type informationResponse struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
}

// Client handles communication with the Spoonacular HTTP API.
// Safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	resultLimit    int
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a Spoonacular client from configuration.
// A non-positive RateLimit disables the outbound limiter.
func NewClient(cfg *config.SpoonacularConfig) *Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	resultLimit := cfg.ResultLimit
	if resultLimit <= 0 {
		resultLimit = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		resultLimit:    resultLimit,
		client:         &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(limit, burst),
		maxRetries:     maxRetries,
		retryBaseDelay: time.Second,
	}
}

// FindByIngredient searches recipes that use the given ingredient.
func (c *Client) FindByIngredient(ctx context.Context, ingredient string) ([]models.RecipeSummary, error) {
	params := url.Values{}
	params.Set("ingredients", ingredient)
	params.Set("number", strconv.Itoa(c.resultLimit))

	var hits []searchHit
	if err := c.getJSON(ctx, endpointSearch, endpointSearch, params, &hits); err != nil {
		return nil, err
	}

	results := make([]models.RecipeSummary, 0, len(hits))
	for _, h := range hits {
		results = append(results, models.RecipeSummary{ID: h.ID, Title: h.Title})
	}
	return results, nil
}

// Information fetches the title and original ingredient lines of a recipe.
func (c *Client) Information(ctx context.Context, id int64) (models.RecipeDetails, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")

	var info informationResponse
	path := strconv.FormatInt(id, 10) + "/information"
	if err := c.getJSON(ctx, endpointInformation, path, params, &info); err != nil {
		return models.RecipeDetails{}, err
	}

	ingredients := make([]string, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}
	return models.RecipeDetails{ID: id, Title: info.Title, Ingredients: ingredients}, nil
}

// SearchByIngredient is FindByIngredient with failures mapped to an empty slice.
func (c *Client) SearchByIngredient(ctx context.Context, ingredient string) []models.RecipeSummary {
	return searchOrEmpty(ctx, c, ingredient)
}

// RecipeDetails is Information with failures mapped to the zero value.
func (c *Client) RecipeDetails(ctx context.Context, id int64) models.RecipeDetails {
	return detailsOrEmpty(ctx, c, id)
}

// Ping checks that the API host is reachable. Any response below 500
// counts as reachable; a missing or exhausted key still answers 401/402.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.doRequestWithRateLimit(ctx, endpointSearch, c.buildURL(endpointSearch, url.Values{"number": {"1"}}))
	if err != nil {
		return fmt.Errorf("failed to ping Spoonacular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("spoonacular ping failed with status: %d", resp.StatusCode)
	}
	return nil
}

// buildURL appends the API key to params and joins everything onto the base URL
func (c *Client) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)
	return c.baseURL + path + "?" + params.Encode()
}

// getJSON performs a GET and decodes a 200 response into result
func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, result interface{}) error {
	resp, err := c.doRequestWithRateLimit(ctx, endpoint, c.buildURL(path, params))
	if err != nil {
		return fmt.Errorf("failed to make %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       c.redact(string(readBodyForError(resp.Body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// doRequestWithRateLimit waits for the outbound limiter, then performs the
// request. HTTP 429 responses are retried with exponential backoff
// (1s, 2s, 4s, ...) or the delay given by Retry-After.
func (c *Client) doRequestWithRateLimit(ctx context.Context, endpoint, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", c.redactErr(err))
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.RecordSpoonacularRequest(endpoint, "error", time.Since(start))
			return nil, fmt.Errorf("HTTP request failed: %w", c.redactErr(err))
		}
		metrics.RecordSpoonacularRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}
		metrics.SpoonacularRetries.WithLabelValues(endpoint).Inc()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// redact removes the API key from s
func (c *Client) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}

// redactErr strips the API key from the URL carried by *url.Error
func (c *Client) redactErr(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		redacted := *urlErr
		redacted.URL = c.redact(urlErr.URL)
		return &redacted
	}
	return err
}

// readBodyForError reads at most maxErrorBodySize bytes for error reporting
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

var (
	_ API    = (*Client)(nil)
	_ Finder = (*Client)(nil)
)
