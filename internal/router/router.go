// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// restaurant directory. It organizes routes into the admin API and the
// public read API, each with its own middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/handlers"
	"github.com/rubms01/ai-restaurant/internal/middleware"
)

// Options carries the route-level settings taken from config.
type Options struct {
	// AdminTokenHash is the bcrypt hash guarding /admin. Empty disables it.
	AdminTokenHash string
	// Limiter throttles /api per client IP. Nil disables it.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(registry *admin.Registry, adm *handlers.Admin, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	// Admin API: bearer token, never cached.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.AdminToken(opts.AdminTokenHash))

		r.Get("/models", adm.Models)
		r.Get("/cache-log", adm.CacheLog)

		// Inlines and actions are scoped to their parent model.
		extra := map[string]func(chi.Router){
			admin.Articles: func(r chi.Router) {
				r.Post("/actions/{action}", adm.ArticleAction)
			},
			admin.Restaurants: func(r chi.Router) {
				r.Route("/{id}/menus", func(r chi.Router) {
					r.Get("/", adm.RestaurantMenus.List)
					r.Post("/", adm.RestaurantMenus.Create)
					r.Put("/{childID}", adm.RestaurantMenus.Update)
					r.Delete("/{childID}", adm.RestaurantMenus.Delete)
				})
				r.Route("/{id}/images", func(r chi.Router) {
					r.Get("/", adm.RestaurantImages.List)
					r.Post("/", adm.RestaurantImages.Create)
					r.Put("/{childID}", adm.RestaurantImages.Update)
					r.Delete("/{childID}", adm.RestaurantImages.Delete)
					r.Post("/{childID}/representative", adm.SetRepresentative)
				})
			},
			admin.Reviews: func(r chi.Router) {
				r.Route("/{id}/images", func(r chi.Router) {
					r.Get("/", adm.ReviewImages.List)
					r.Post("/", adm.ReviewImages.Create)
					r.Put("/{childID}", adm.ReviewImages.Update)
					r.Delete("/{childID}", adm.ReviewImages.Delete)
				})
			},
		}

		for _, m := range registry.All() {
			res := adm.Resource(m.Name)
			if res == nil {
				continue
			}
			r.Route("/"+m.Name, func(r chi.Router) {
				r.Get("/", res.List)
				r.Post("/", res.Create)
				r.Get("/{id}", res.Get)
				r.Put("/{id}", res.Update)
				r.Delete("/{id}", res.Delete)
				r.Get("/{id}/delete-preview", res.DeletePreview)
				if fn := extra[m.Name]; fn != nil {
					fn(r)
				}
			})
		}

		r.Post("/uploads/{kind}", adm.Upload)
		r.Delete("/uploads/*", adm.DeleteUpload)
	})

	// Public read API.
	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}
		r.Get("/articles", public.Articles)
		r.Get("/articles/{slug}", public.Article)
		r.Get("/restaurants/{id}", public.Restaurant)
		r.Get("/restaurants/{id}/reviews", public.RestaurantReviews)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
