// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the restaurant directory:
// the admin JSON API (CRUD per registered model, inlines, bulk actions,
// uploads) and the public read API. Handlers receive their dependencies
// through the handler struct.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/cache"
	"github.com/rubms01/ai-restaurant/internal/models"
	"github.com/rubms01/ai-restaurant/internal/slug"
	"github.com/rubms01/ai-restaurant/internal/store"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

// ObjectStore is the object storage used for image assets.
// *storage.Client implements it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}

// Admin groups all admin API handlers and their dependencies.
type Admin struct {
	registry  *admin.Registry
	stores    *store.Stores
	objects   ObjectStore
	cache     *cache.ResponseCache
	resources map[string]Resource

	RestaurantMenus  *Inline[models.RestaurantMenu]
	RestaurantImages *Inline[models.RestaurantImage]
	ReviewImages     *Inline[models.ReviewImage]
}

// NewAdmin creates the admin handler group. objects and responseCache may
// be nil when S3 or Valkey are not configured.
func NewAdmin(registry *admin.Registry, stores *store.Stores, objects ObjectStore, responseCache *cache.ResponseCache) *Admin {
	a := &Admin{
		registry: registry,
		stores:   stores,
		objects:  objects,
		cache:    responseCache,
	}
	a.resources = a.buildResources()
	a.buildInlines()
	return a
}

// Resource returns the CRUD handlers of a registered model, or nil.
func (a *Admin) Resource(name string) Resource {
	return a.resources[name]
}

// Models lists the registry so the admin client can build its screens.
func (a *Admin) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.registry.All())
}

// CacheLog returns the most recent public cache invalidations.
func (a *Admin) CacheLog(w http.ResponseWriter, r *http.Request) {
	verr := &validation.Error{}
	limit := queryInt(r, "limit", verr)
	if len(verr.Fields) > 0 {
		writeError(w, r, verr)
		return
	}
	if limit <= 0 || limit > store.MaxLimit {
		limit = 50
	}
	entries, err := a.stores.CacheLog.RecentEntries(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *Admin) buildResources() map[string]Resource {
	s := a.stores
	del := s.Deletion
	invalidateRestaurants := func(entity string) func(context.Context, uuid.UUID, string) {
		return func(ctx context.Context, id uuid.UUID, action string) {
			a.invalidatePrefix(ctx, entity, id, action, cache.RestaurantsPrefix)
		}
	}

	return map[string]Resource{
		admin.Articles: &resource[models.Article]{
			model:    a.registry.Get(admin.Articles),
			store:    s.Articles,
			deletion: del,
			id:       func(v *models.Article) uuid.UUID { return v.ID },
			setID:    func(v *models.Article, id uuid.UUID) { v.ID = id },
			prepare:  a.prepareArticle,
			changed: func(ctx context.Context, v *models.Article, action string) {
				a.invalidatePrefix(ctx, admin.Articles, v.ID, action, cache.ArticlesPrefix)
			},
		},
		admin.Tags: &resource[models.Tag]{
			model:    a.registry.Get(admin.Tags),
			store:    s.Tags,
			deletion: del,
			id:       func(v *models.Tag) uuid.UUID { return v.ID },
			setID:    func(v *models.Tag, id uuid.UUID) { v.ID = id },
			changed:  byID[models.Tag](func(v *models.Tag) uuid.UUID { return v.ID }, invalidateRestaurants(admin.Tags)),
		},
		admin.Restaurants: &resource[models.Restaurant]{
			model:    a.registry.Get(admin.Restaurants),
			store:    s.Restaurants,
			deletion: del,
			id:       func(v *models.Restaurant) uuid.UUID { return v.ID },
			setID:    func(v *models.Restaurant, id uuid.UUID) { v.ID = id },
			detail:   a.restaurantDetail,
			changed: func(ctx context.Context, v *models.Restaurant, action string) {
				a.invalidatePrefix(ctx, admin.Restaurants, v.ID, action, cache.RestaurantKey(v.ID))
			},
		},
		admin.RestaurantCategories: &resource[models.RestaurantCategory]{
			model:    a.registry.Get(admin.RestaurantCategories),
			store:    s.RestaurantCategories,
			deletion: del,
			id:       func(v *models.RestaurantCategory) uuid.UUID { return v.ID },
			setID:    func(v *models.RestaurantCategory, id uuid.UUID) { v.ID = id },
			changed: byID[models.RestaurantCategory](func(v *models.RestaurantCategory) uuid.UUID { return v.ID },
				invalidateRestaurants(admin.RestaurantCategories)),
		},
		admin.Reviews: &resource[models.Review]{
			model:    a.registry.Get(admin.Reviews),
			store:    s.Reviews,
			deletion: del,
			id:       func(v *models.Review) uuid.UUID { return v.ID },
			setID:    func(v *models.Review, id uuid.UUID) { v.ID = id },
			detail:   a.reviewDetail,
			changed: func(ctx context.Context, v *models.Review, action string) {
				a.invalidateKeys(ctx, admin.Reviews, v.ID, action, cache.RestaurantReviewsKey(v.RestaurantID))
			},
			replaced: func(ctx context.Context, old, saved *models.Review) {
				if old.RestaurantID != saved.RestaurantID {
					a.invalidateKeys(ctx, admin.Reviews, saved.ID, "move", cache.RestaurantReviewsKey(old.RestaurantID))
				}
			},
		},
		admin.SocialChannels: &resource[models.SocialChannel]{
			model:    a.registry.Get(admin.SocialChannels),
			store:    s.SocialChannels,
			deletion: del,
			id:       func(v *models.SocialChannel) uuid.UUID { return v.ID },
			setID:    func(v *models.SocialChannel, id uuid.UUID) { v.ID = id },
			changed: byID[models.SocialChannel](func(v *models.SocialChannel) uuid.UUID { return v.ID },
				invalidateRestaurants(admin.SocialChannels)),
		},
		admin.CuisineTypes: &resource[models.CuisineType]{
			model:    a.registry.Get(admin.CuisineTypes),
			store:    s.CuisineTypes,
			deletion: del,
			id:       func(v *models.CuisineType) uuid.UUID { return v.ID },
			setID:    func(v *models.CuisineType, id uuid.UUID) { v.ID = id },
			changed: byID[models.CuisineType](func(v *models.CuisineType) uuid.UUID { return v.ID },
				invalidateRestaurants(admin.CuisineTypes)),
		},
		admin.Regions: &resource[models.Region]{
			model:    a.registry.Get(admin.Regions),
			store:    s.Regions,
			deletion: del,
			id:       func(v *models.Region) uuid.UUID { return v.ID },
			setID:    func(v *models.Region, id uuid.UUID) { v.ID = id },
			changed: byID[models.Region](func(v *models.Region) uuid.UUID { return v.ID },
				invalidateRestaurants(admin.Regions)),
		},
	}
}

// byID adapts an id-based change hook to a resource hook.
func byID[T any](id func(*T) uuid.UUID, fn func(context.Context, uuid.UUID, string)) func(context.Context, *T, string) {
	return func(ctx context.Context, v *T, action string) {
		fn(ctx, id(v), action)
	}
}

// prepareArticle normalizes a client-supplied slug or derives a unique
// one from the title. Uniqueness of a supplied slug is left to the
// database constraint.
func (a *Admin) prepareArticle(ctx context.Context, art *models.Article) error {
	if art.Slug != "" {
		art.Slug = slug.Generate(art.Slug)
		if art.Slug == "" {
			return validation.Field("slug", "invalid", "")
		}
		return nil
	}
	s, err := slug.Unique(ctx, art.Title, func(ctx context.Context, candidate string) (bool, error) {
		return a.stores.Articles.SlugExists(ctx, candidate, art.ID)
	})
	if err != nil {
		return err
	}
	art.Slug = s
	return nil
}

// restaurantDetail attaches the inline menus and images.
func (a *Admin) restaurantDetail(ctx context.Context, r *models.Restaurant) error {
	menus, err := a.stores.RestaurantMenus.ListByRestaurant(ctx, r.ID)
	if err != nil {
		return err
	}
	images, err := a.stores.RestaurantImages.ListByRestaurant(ctx, r.ID)
	if err != nil {
		return err
	}
	for i := range images {
		images[i].URL = a.fileURL(images[i].Image)
	}
	r.Menus = menus
	r.Images = images
	return nil
}

// reviewDetail attaches the inline review images.
func (a *Admin) reviewDetail(ctx context.Context, rv *models.Review) error {
	images, err := a.stores.ReviewImages.ListByReview(ctx, rv.ID)
	if err != nil {
		return err
	}
	for i := range images {
		images[i].URL = a.fileURL(images[i].Image)
	}
	rv.Images = images
	return nil
}

func (a *Admin) fileURL(key string) string {
	if a.objects == nil || key == "" {
		return ""
	}
	return a.objects.FileURL(key)
}

// invalidateKeys drops cached public responses and records why.
func (a *Admin) invalidateKeys(ctx context.Context, entity string, id uuid.UUID, action string, keys ...string) {
	a.cache.Invalidate(ctx, keys...)
	a.stores.CacheLog.Log(ctx, entity, id, action)
}

// invalidatePrefix drops every cached public response under prefix.
func (a *Admin) invalidatePrefix(ctx context.Context, entity string, id uuid.UUID, action, prefix string) {
	a.cache.InvalidatePrefix(ctx, prefix)
	a.stores.CacheLog.Log(ctx, entity, id, action)
}
