// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/handlers"
	"github.com/rubms01/ai-restaurant/internal/middleware"
	"github.com/rubms01/ai-restaurant/internal/store"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// newTestRouter builds the router over stores that are never queried; the
// requests below all finish before reaching PostgreSQL.
func newTestRouter(t *testing.T, opts Options) chi.Router {
	t.Helper()
	registry := admin.Default()
	stores := store.New(nil)
	adm := handlers.NewAdmin(registry, stores, nil, nil)
	public := handlers.NewPublic(stores, nil, nil)
	return New(registry, adm, public, opts)
}

func TestAdminRoutes(t *testing.T) {
	const token = "s3cret-admin-token"
	hash, err := middleware.HashToken(token)
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(t, Options{AdminTokenHash: hash})

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
	}{
		{"no token", http.MethodGet, "/admin/models", "", http.StatusUnauthorized},
		{"wrong token", http.MethodGet, "/admin/models", "Bearer nope", http.StatusUnauthorized},
		{"models", http.MethodGet, "/admin/models", "Bearer " + token, http.StatusOK},
		{"bad id", http.MethodGet, "/admin/restaurants/not-a-uuid", "Bearer " + token, http.StatusBadRequest},
		{"inline bad parent id", http.MethodGet, "/admin/restaurants/not-a-uuid/menus", "Bearer " + token, http.StatusBadRequest},
		{"review images bad id", http.MethodGet, "/admin/reviews/x/images", "Bearer " + token, http.StatusBadRequest},
		{"unknown model", http.MethodGet, "/admin/users", "Bearer " + token, http.StatusNotFound},
		{"upload without storage", http.MethodPost, "/admin/uploads/restaurant", "Bearer " + token, http.StatusServiceUnavailable},
		{"list bad year", http.MethodGet, "/admin/articles?year=x", "Bearer " + token, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("%s %s: got %d, want %d (%s)", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
			if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", cc)
			}
		})
	}
}

func TestSecureHeadersEverywhere(t *testing.T) {
	r := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestPublicRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	r := newTestRouter(t, Options{Limiter: limiter})

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/not-a-uuid", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [400 429]", codes)
	}
}
