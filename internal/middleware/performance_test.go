// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestNewPerformanceMonitor_Defaults(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(0, 0)
	if pm.maxSamples != 1000 {
		t.Errorf("maxSamples = %d, want 1000", pm.maxSamples)
	}
	if pm.slowThreshold != DefaultSlowRequestThreshold {
		t.Errorf("slowThreshold = %v, want %v", pm.slowThreshold, DefaultSlowRequestThreshold)
	}
}

func TestPerformanceMonitor_SlidingWindow(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, time.Second)
	for i := 1; i <= 5; i++ {
		pm.Record(RequestSample{Route: "/r", Method: "GET", Duration: time.Duration(i) * time.Millisecond})
	}

	recent := pm.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(recent))
	}
	if recent[0].Duration != 3*time.Millisecond || recent[2].Duration != 5*time.Millisecond {
		t.Errorf("Expected samples 3..5, got %v..%v", recent[0].Duration, recent[2].Duration)
	}
	if got := pm.Recent(0); len(got) != 0 {
		t.Errorf("Recent(0) returned %d samples", len(got))
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100, time.Second)
	for _, ms := range []int64{10, 20, 30, 40, 100} {
		pm.Record(RequestSample{Route: "/api/v1/favorites", Method: "GET", Duration: time.Duration(ms) * time.Millisecond})
	}
	pm.Record(RequestSample{Route: "/api/v1/grocery", Method: "GET", Duration: 5 * time.Millisecond})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(stats))
	}

	fav := stats[0]
	if fav.Endpoint != "GET /api/v1/favorites" {
		t.Errorf("busiest endpoint = %q", fav.Endpoint)
	}
	if fav.RequestCount != 5 || fav.MinMs != 10 || fav.MaxMs != 100 || fav.P50Ms != 30 {
		t.Errorf("unexpected stats: %+v", fav)
	}
	if fav.AvgMs != 40 {
		t.Errorf("AvgMs = %v, want 40", fav.AvgMs)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10, time.Hour)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Delete("/favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/favorites/9", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 {
		t.Fatal("Expected one recorded sample")
	}
	if recent[0].Route != "/favorites/{id}" || recent[0].StatusCode != http.StatusNoContent {
		t.Errorf("unexpected sample: %+v", recent[0])
	}
}

func TestPerformanceMonitor_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(50, time.Second)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				pm.Record(RequestSample{Route: "/r", Method: "GET", Duration: time.Millisecond})
				_ = pm.Stats()
			}
		}()
	}
	wg.Wait()

	if got := len(pm.Recent(100)); got != 50 {
		t.Errorf("Expected window of 50, got %d", got)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	if percentile(nil, 0.5) != 0 {
		t.Error("percentile(nil) should be 0")
	}
	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := percentile(sorted, 0.95); got != 9 {
		t.Errorf("p95 = %d, want 9", got)
	}
}
