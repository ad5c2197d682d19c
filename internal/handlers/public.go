// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rubms01/ai-restaurant/internal/cache"
	"github.com/rubms01/ai-restaurant/internal/markdown"
	"github.com/rubms01/ai-restaurant/internal/models"
	"github.com/rubms01/ai-restaurant/internal/store"
)

// reviewImageLoaders bounds the concurrent image queries of one review list.
const reviewImageLoaders = 4

// Public groups the read-only handlers behind the public API. It checks
// the Valkey response cache before touching PostgreSQL and stores the
// encoded body on a miss. Not-found results are never cached.
type Public struct {
	stores  *store.Stores
	objects ObjectStore
	cache   *cache.ResponseCache
}

// NewPublic creates a new Public handler group. objects and responseCache
// may be nil if S3 or Valkey are not configured.
func NewPublic(stores *store.Stores, objects ObjectStore, responseCache *cache.ResponseCache) *Public {
	return &Public{stores: stores, objects: objects, cache: responseCache}
}

// loadFunc produces the response body of a cacheable request. found is
// false when the requested object does not exist.
type loadFunc func(ctx context.Context) (v any, found bool, err error)

// serveCached answers from the response cache or calls load and caches its
// encoded result.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string, load loadFunc) {
	ctx := r.Context()
	if body, ok := p.cache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(body)
		return
	}

	v, found, err := load(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p.cache.Set(ctx, key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

func (p *Public) fileURL(key string) string {
	if p.objects == nil || key == "" {
		return ""
	}
	return p.objects.FileURL(key)
}

// Articles lists published articles, newest first. ?index=true limits the
// list to articles featured on the index page.
func (p *Public) Articles(w http.ResponseWriter, r *http.Request) {
	indexOnly, _ := strconv.ParseBool(r.URL.Query().Get("index"))
	p.serveCached(w, r, cache.ArticleListKey(indexOnly), func(ctx context.Context) (any, bool, error) {
		items, err := p.stores.Articles.ListPublished(ctx, indexOnly)
		if err != nil {
			return nil, false, err
		}
		for i := range items {
			p.articleImage(&items[i])
		}
		return items, true, nil
	})
}

// Article returns one published article with its Markdown rendered to HTML.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	p.serveCached(w, r, cache.ArticleKey(slugParam), func(ctx context.Context) (any, bool, error) {
		art, err := p.stores.Articles.FindPublishedBySlug(ctx, slugParam)
		if err != nil || art == nil {
			return nil, false, err
		}
		html, err := markdown.ToHTML(art.Content)
		if err != nil {
			return nil, false, err
		}
		art.ContentHTML = html
		p.articleImage(art)
		return art, true, nil
	})
}

// articleImage turns the stored preview image key into a public URL.
func (p *Public) articleImage(a *models.Article) {
	if a.PreviewImage == nil {
		return
	}
	if u := p.fileURL(*a.PreviewImage); u != "" {
		a.PreviewImage = &u
	}
}

// Restaurant returns a restaurant with its category, region, images and
// menus. The related rows are loaded concurrently.
func (p *Public) Restaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p.serveCached(w, r, cache.RestaurantKey(id), func(ctx context.Context) (any, bool, error) {
		rest, err := p.stores.Restaurants.FindByID(ctx, id)
		if err != nil || rest == nil {
			return nil, false, err
		}

		g, gctx := errgroup.WithContext(ctx)
		if rest.CategoryID != nil {
			g.Go(func() error {
				c, err := p.stores.RestaurantCategories.FindByID(gctx, *rest.CategoryID)
				rest.Category = c
				return err
			})
		}
		if rest.RegionID != nil {
			g.Go(func() error {
				reg, err := p.stores.Regions.FindByID(gctx, *rest.RegionID)
				rest.Region = reg
				return err
			})
		}
		g.Go(func() error {
			images, err := p.stores.RestaurantImages.ListByRestaurant(gctx, id)
			for i := range images {
				images[i].URL = p.fileURL(images[i].Image)
			}
			rest.Images = images
			return err
		})
		g.Go(func() error {
			menus, err := p.stores.RestaurantMenus.ListByRestaurant(gctx, id)
			rest.Menus = menus
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, false, err
		}
		return rest, true, nil
	})
}

// RestaurantReviews returns the reviews of a restaurant with their images.
func (p *Public) RestaurantReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p.serveCached(w, r, cache.RestaurantReviewsKey(id), func(ctx context.Context) (any, bool, error) {
		exists, err := p.stores.Restaurants.Exists(ctx, id)
		if err != nil || !exists {
			return nil, false, err
		}
		reviews, err := p.stores.Reviews.ListByRestaurant(ctx, id)
		if err != nil {
			return nil, false, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(reviewImageLoaders)
		for i := range reviews {
			rv := &reviews[i]
			g.Go(func() error {
				images, err := p.stores.ReviewImages.ListByReview(gctx, rv.ID)
				for j := range images {
					images[j].URL = p.fileURL(images[j].Image)
				}
				rv.Images = images
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, false, err
		}
		slog.Debug("reviews loaded", "restaurant_id", id, "count", len(reviews))
		return reviews, true, nil
	})
}
