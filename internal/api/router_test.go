// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/middleware"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		pingErr    error
		breaker    string
		wantStatus int
		check      func(t *testing.T, data map[string]interface{})
	}{
		{
			name: "health healthy", path: "/health", breaker: "closed", wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["status"] != "healthy" || data["version"] != "test" || data["recipe_api_breaker"] != "closed" {
					t.Errorf("unexpected health: %v", data)
				}
				if data["schema_version"] != float64(1) {
					t.Errorf("schema_version = %v, want 1", data["schema_version"])
				}
			},
		},
		{
			name: "health degraded by store", path: "/health", pingErr: errors.New("down"), breaker: "closed", wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["status"] != "degraded" || data["database_connected"] != false {
					t.Errorf("unexpected health: %v", data)
				}
				if _, ok := data["schema_version"]; ok {
					t.Errorf("schema_version reported without a store: %v", data)
				}
			},
		},
		{
			name: "health degraded by breaker", path: "/health", breaker: "open", wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["status"] != "degraded" {
					t.Errorf("unexpected health: %v", data)
				}
			},
		},
		{
			name: "live", path: "/health/live", breaker: "open", pingErr: errors.New("down"), wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["alive"] != true {
					t.Errorf("unexpected live: %v", data)
				}
			},
		},
		{
			name: "ready", path: "/health/ready", breaker: "open", wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["ready_to_serve"] != true {
					t.Errorf("unexpected ready: %v", data)
				}
			},
		},
		{
			name: "not ready", path: "/health/ready", pingErr: errors.New("down"), breaker: "closed", wantStatus: http.StatusServiceUnavailable,
			check: func(t *testing.T, data map[string]interface{}) {
				if data["database_connected"] != false {
					t.Errorf("unexpected ready: %v", data)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)
			ts.svc.pingErr = tt.pingErr
			ts.breaker = tt.breaker

			rec, resp := ts.do(t, http.MethodGet, tt.path)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			tt.check(t, dataAs[map[string]interface{}](t, resp))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	ts.do(t, http.MethodGet, "/api/v1/favorites")

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/favorites"`) {
		t.Error("Expected api_requests_total for the favorites route")
	}
}

func TestPerformanceEndpoint(t *testing.T) {
	t.Parallel()

	pm := middleware.NewPerformanceMonitor(100, time.Minute)
	h := NewHandler(newMockService(), HandlerConfig{PerfMon: pm})
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	handler := NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/performance", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"endpoint":"GET /api/v1/favorites","request_count":3`) {
		t.Errorf("Expected favorites stats, got %s", rec.Body.String())
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/nope")
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected JSON 404, got %d %s", rec.Code, rec.Body.String())
	}

	rec, resp = ts.do(t, http.MethodPut, "/api/v1/favorites/10")
	if rec.Code != http.StatusMethodNotAllowed || resp.Error == nil || resp.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("Expected JSON 405, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/favorites")

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	requestID := rec.Header().Get(middleware.RequestIDHeader)
	if requestID == "" {
		t.Fatal("Expected X-Request-ID header")
	}
	if resp.Meta.RequestID != requestID {
		t.Errorf("meta.request_id = %q, want %q", resp.Meta.RequestID, requestID)
	}
}

func TestHSTSOnlyOverHTTPS(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be set over plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS behind a TLS proxy")
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitRequests = 2
	mwCfg.RateLimitWindow = time.Minute
	ts := newTestServer(t, mwCfg)

	for i := 0; i < 2; i++ {
		rec, _ := ts.do(t, http.MethodGet, "/api/v1/favorites")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/favorites")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("Expected TOO_MANY_REQUESTS, got %+v", resp.Error)
	}

	// Health has its own, more permissive limit.
	rec, _ = ts.do(t, http.MethodGet, "/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected health to stay available, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = []string{"https://kitchen.example"}
	mwCfg.RateLimitDisabled = true
	ts := newTestServer(t, mwCfg)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://kitchen.example", true},
		{"https://evil.example", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/favorites/10", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tt.allowed && got != tt.origin {
			t.Errorf("origin %s: Allow-Origin = %q", tt.origin, got)
		}
		if !tt.allowed && got != "" {
			t.Errorf("origin %s should be rejected, got %q", tt.origin, got)
		}
	}
}

func TestNewChiMiddlewareFromConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddlewareFromConfig(&config.SecurityConfig{
		RateLimitReqs:     42,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"http://localhost:3000"},
	})

	if m.config.RateLimitRequests != 42 || m.config.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit not applied: %+v", m.config)
	}
	if !m.config.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}
	if len(m.config.CORSAllowedOrigins) != 1 || m.config.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORS origins = %v", m.config.CORSAllowedOrigins)
	}
	if m.config.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want default 86400", m.config.CORSMaxAge)
	}
}

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("unexpected default rate limit: %+v", m.config)
	}
}
