// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/store"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

// crudStore is the store surface a changelist resource needs. Every
// top-level entity store satisfies it.
type crudStore[T any] interface {
	List(ctx context.Context, p store.ListParams) ([]T, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, v *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Resource is the HTTP surface of one registered model admin.
type Resource interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeletePreview(w http.ResponseWriter, r *http.Request)
}

// resource serves the admin CRUD endpoints of entity T.
type resource[T any] struct {
	model    *admin.ModelAdmin
	store    crudStore[T]
	deletion *store.DeletionStore

	id    func(*T) uuid.UUID
	setID func(*T, uuid.UUID)

	// prepare runs before validation and the write, e.g. to derive a slug.
	prepare func(ctx context.Context, v *T) error
	// detail loads inline children for the detail view.
	detail func(ctx context.Context, v *T) error
	// changed runs after a successful write with the affected object.
	changed func(ctx context.Context, v *T, action string)
	// replaced runs after an update with the row as it was before the
	// write, for keys that depend on a field the update may change.
	replaced func(ctx context.Context, old, saved *T)
}

// listResponse is one changelist page.
type listResponse struct {
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Results []map[string]any `json:"results"`
}

func (rs *resource[T]) listParams(r *http.Request) (store.ListParams, error) {
	q := r.URL.Query()
	verr := &validation.Error{}
	p := store.ListParams{
		Search:  q.Get("q"),
		Order:   q.Get("o"),
		Filters: map[string]string{},
		Year:    queryInt(r, "year", verr),
		Month:   queryInt(r, "month", verr),
		Limit:   queryInt(r, "limit", verr),
		Offset:  queryInt(r, "offset", verr),
	}
	for _, f := range rs.model.ListFilter {
		if v := q.Get(f); v != "" {
			p.Filters[f] = v
		}
	}
	if len(verr.Fields) > 0 {
		return p, verr
	}
	return p, nil
}

// List returns a page of projected rows.
func (rs *resource[T]) List(w http.ResponseWriter, r *http.Request) {
	p, err := rs.listParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, total, err := rs.store.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows := make([]map[string]any, 0, len(items))
	for i := range items {
		row, err := rs.model.Project(&items[i])
		if err != nil {
			writeError(w, r, err)
			return
		}
		rows = append(rows, row)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	if limit > store.MaxLimit {
		limit = store.MaxLimit
	}
	writeJSON(w, http.StatusOK, listResponse{Count: total, Limit: limit, Offset: max(p.Offset, 0), Results: rows})
}

// Create validates and inserts a new object. Inline children are not
// accepted here; they are added once the parent exists.
func (rs *resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	v := new(T)
	if !decodeJSON(w, r, v) {
		return
	}
	rs.setID(v, uuid.Nil)

	saved, err := rs.save(r.Context(), v, rs.store.Create)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rs.changed != nil {
		rs.changed(r.Context(), saved, "create")
	}
	writeJSON(w, http.StatusCreated, saved)
}

// Get returns one object with its inline children.
func (rs *resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	v, ok := rs.find(w, r)
	if !ok {
		return
	}
	if rs.detail != nil {
		if err := rs.detail(r.Context(), v); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, v)
}

// Update replaces an existing object. Read-only fields are never written
// by the stores, whatever the body holds.
func (rs *resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	v := new(T)
	if !decodeJSON(w, r, v) {
		return
	}
	rs.setID(v, id)

	var old *T
	if rs.replaced != nil {
		var err error
		if old, err = rs.store.FindByID(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
	}

	saved, err := rs.save(r.Context(), v, rs.store.Update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if saved == nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	if rs.changed != nil {
		rs.changed(r.Context(), saved, "update")
	}
	if rs.replaced != nil && old != nil {
		rs.replaced(r.Context(), old, saved)
	}
	writeJSON(w, http.StatusOK, saved)
}

// Delete removes an object; dependent rows follow the foreign key rules.
func (rs *resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	v, ok := rs.find(w, r)
	if !ok {
		return
	}
	if err := rs.store.Delete(r.Context(), rs.id(v)); err != nil {
		writeError(w, r, err)
		return
	}
	if rs.changed != nil {
		rs.changed(r.Context(), v, "delete")
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePreview reports what deleting the object would cascade or clear.
func (rs *resource[T]) DeletePreview(w http.ResponseWriter, r *http.Request) {
	v, ok := rs.find(w, r)
	if !ok {
		return
	}
	effects, err := rs.deletion.Preview(r.Context(), rs.model.Table, rs.id(v))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"object":  v,
		"effects": effects,
	})
}

func (rs *resource[T]) find(w http.ResponseWriter, r *http.Request) (*T, bool) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return nil, false
	}
	v, err := rs.store.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if v == nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return v, true
}

func (rs *resource[T]) save(ctx context.Context, v *T, write func(context.Context, *T) (*T, error)) (*T, error) {
	if rs.prepare != nil {
		if err := rs.prepare(ctx, v); err != nil {
			return nil, err
		}
	}
	if err := validation.Struct(v); err != nil {
		return nil, err
	}
	return write(ctx, v)
}
