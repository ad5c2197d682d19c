// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/cache"
	"github.com/rubms01/ai-restaurant/internal/models"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

// childStore is the store surface of an inline model.
type childStore[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, v *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Inline serves the rows edited together with a parent object, such as a
// restaurant's menus. Every route is scoped to the parent in the URL and
// a child belonging to another parent is reported as not found.
type Inline[T any] struct {
	store    childStore[T]
	id       func(*T) uuid.UUID
	exists   func(ctx context.Context, parentID uuid.UUID) (bool, error)
	list     func(ctx context.Context, parentID uuid.UUID) ([]T, error)
	parentOf func(*T) uuid.UUID
	bind     func(v *T, parentID, id uuid.UUID)
	decorate func(*T)
	changed  func(ctx context.Context, parentID uuid.UUID, action string)
}

func (a *Admin) buildInlines() {
	s := a.stores

	a.RestaurantMenus = &Inline[models.RestaurantMenu]{
		store:    s.RestaurantMenus,
		id:       func(m *models.RestaurantMenu) uuid.UUID { return m.ID },
		exists:   s.Restaurants.Exists,
		list:     s.RestaurantMenus.ListByRestaurant,
		parentOf: func(m *models.RestaurantMenu) uuid.UUID { return m.RestaurantID },
		bind: func(m *models.RestaurantMenu, parentID, id uuid.UUID) {
			m.RestaurantID, m.ID = parentID, id
		},
		changed: a.restaurantChildChanged,
	}

	a.RestaurantImages = &Inline[models.RestaurantImage]{
		store:    s.RestaurantImages,
		id:       func(i *models.RestaurantImage) uuid.UUID { return i.ID },
		exists:   s.Restaurants.Exists,
		list:     s.RestaurantImages.ListByRestaurant,
		parentOf: func(i *models.RestaurantImage) uuid.UUID { return i.RestaurantID },
		bind: func(i *models.RestaurantImage, parentID, id uuid.UUID) {
			i.RestaurantID, i.ID = parentID, id
		},
		decorate: func(i *models.RestaurantImage) { i.URL = a.fileURL(i.Image) },
		changed:  a.restaurantChildChanged,
	}

	a.ReviewImages = &Inline[models.ReviewImage]{
		store: s.ReviewImages,
		id:    func(i *models.ReviewImage) uuid.UUID { return i.ID },
		exists: func(ctx context.Context, id uuid.UUID) (bool, error) {
			rv, err := s.Reviews.FindByID(ctx, id)
			return rv != nil, err
		},
		list:     s.ReviewImages.ListByReview,
		parentOf: func(i *models.ReviewImage) uuid.UUID { return i.ReviewID },
		bind: func(i *models.ReviewImage, parentID, id uuid.UUID) {
			i.ReviewID, i.ID = parentID, id
		},
		decorate: func(i *models.ReviewImage) { i.URL = a.fileURL(i.Image) },
		changed: func(ctx context.Context, reviewID uuid.UUID, action string) {
			rv, err := s.Reviews.FindByID(ctx, reviewID)
			if err != nil || rv == nil {
				return
			}
			a.invalidateKeys(ctx, admin.Reviews, reviewID, action, cache.RestaurantReviewsKey(rv.RestaurantID))
		},
	}
}

func (a *Admin) restaurantChildChanged(ctx context.Context, restaurantID uuid.UUID, action string) {
	a.invalidatePrefix(ctx, admin.Restaurants, restaurantID, action, cache.RestaurantKey(restaurantID))
}

// parent resolves the parent ID from the URL, writing 404 when the parent
// does not exist.
func (in *Inline[T]) parent(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	parentID, ok := urlID(w, r, "id")
	if !ok {
		return uuid.Nil, false
	}
	exists, err := in.exists(r.Context(), parentID)
	if err != nil {
		writeError(w, r, err)
		return uuid.Nil, false
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return parentID, true
}

// child loads the child named in the URL, checking it belongs to parentID.
func (in *Inline[T]) child(w http.ResponseWriter, r *http.Request, parentID uuid.UUID) (*T, bool) {
	childID, ok := urlID(w, r, "childID")
	if !ok {
		return nil, false
	}
	v, err := in.store.FindByID(r.Context(), childID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if v == nil || in.parentOf(v) != parentID {
		writeMessage(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return v, true
}

func (in *Inline[T]) respond(w http.ResponseWriter, status int, v *T) {
	if in.decorate != nil {
		in.decorate(v)
	}
	writeJSON(w, status, v)
}

// List returns the children of the parent.
func (in *Inline[T]) List(w http.ResponseWriter, r *http.Request) {
	parentID, ok := in.parent(w, r)
	if !ok {
		return
	}
	items, err := in.list(r.Context(), parentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if in.decorate != nil {
		for i := range items {
			in.decorate(&items[i])
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create adds a child to the parent.
func (in *Inline[T]) Create(w http.ResponseWriter, r *http.Request) {
	parentID, ok := in.parent(w, r)
	if !ok {
		return
	}
	v := new(T)
	if !decodeJSON(w, r, v) {
		return
	}
	in.bind(v, parentID, uuid.Nil)
	if err := validation.Struct(v); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := in.store.Create(r.Context(), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.changed(r.Context(), parentID, "create")
	in.respond(w, http.StatusCreated, saved)
}

// Update replaces a child of the parent.
func (in *Inline[T]) Update(w http.ResponseWriter, r *http.Request) {
	parentID, ok := in.parent(w, r)
	if !ok {
		return
	}
	existing, ok := in.child(w, r, parentID)
	if !ok {
		return
	}
	v := new(T)
	if !decodeJSON(w, r, v) {
		return
	}
	in.bind(v, parentID, in.id(existing))
	if err := validation.Struct(v); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := in.store.Update(r.Context(), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if saved == nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	in.changed(r.Context(), parentID, "update")
	in.respond(w, http.StatusOK, saved)
}

// Delete removes a child of the parent.
func (in *Inline[T]) Delete(w http.ResponseWriter, r *http.Request) {
	parentID, ok := in.parent(w, r)
	if !ok {
		return
	}
	existing, ok := in.child(w, r, parentID)
	if !ok {
		return
	}
	if err := in.store.Delete(r.Context(), in.id(existing)); err != nil {
		writeError(w, r, err)
		return
	}
	in.changed(r.Context(), parentID, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// SetRepresentative makes the image the restaurant's representative image
// and clears the flag on the others.
func (a *Admin) SetRepresentative(w http.ResponseWriter, r *http.Request) {
	in := a.RestaurantImages
	parentID, ok := in.parent(w, r)
	if !ok {
		return
	}
	img, ok := in.child(w, r, parentID)
	if !ok {
		return
	}
	saved, err := a.stores.RestaurantImages.SetRepresentative(r.Context(), img.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if saved == nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	in.changed(r.Context(), parentID, "update")
	in.respond(w, http.StatusOK, saved)
}
