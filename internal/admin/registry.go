// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package admin holds the model-admin registry: for every entity exposed
// in the admin console it records which columns the changelist shows,
// which fields are searchable or filterable, which fields are read-only,
// the inline child editors and the bulk actions.
package admin

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// StrColumn is the pseudo-column that renders an object's String() form.
const StrColumn = "__str__"

// Action is a bulk operation offered on the changelist.
type Action struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Inline is a child entity edited on its parent's detail page.
type Inline struct {
	Name  string `json:"name"`  // URL segment under the parent, e.g. "menus"
	Model string `json:"model"` // child entity type
	Extra int    `json:"extra"` // blank rows the editor offers
}

// ModelAdmin is the admin configuration of one entity.
type ModelAdmin struct {
	Name               string   `json:"name"` // URL segment under /admin
	Table              string   `json:"table"`
	VerboseName        string   `json:"verbose_name"`
	VerboseNamePlural  string   `json:"verbose_name_plural"`
	ListDisplay        []string `json:"list_display"`
	Fields             []string `json:"fields,omitempty"`
	ReadonlyFields     []string `json:"readonly_fields,omitempty"`
	SearchFields       []string `json:"search_fields,omitempty"`
	ListFilter         []string `json:"list_filter,omitempty"`
	DateHierarchy      string   `json:"date_hierarchy,omitempty"`
	Ordering           []string `json:"ordering,omitempty"`
	AutocompleteFields []string `json:"autocomplete_fields,omitempty"`
	Actions            []Action `json:"actions,omitempty"`
	Inlines            []Inline `json:"inlines,omitempty"`

	// Computed columns that are not plain JSON fields of the entity.
	Computed map[string]func(obj any) any `json:"-"`
}

// IsReadonly reports whether field may not be written through the admin.
func (m *ModelAdmin) IsReadonly(field string) bool {
	for _, f := range m.ReadonlyFields {
		if f == field {
			return true
		}
	}
	return false
}

// HasAction reports whether the named bulk action is registered.
func (m *ModelAdmin) HasAction(name string) bool {
	for _, a := range m.Actions {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Project turns an entity into a changelist row holding only the
// ListDisplay columns (plus "id" so the row stays addressable).
func (m *ModelAdmin) Project(obj any) (map[string]any, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", m.Name, err)
	}
	var all map[string]any
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("project %s: %w", m.Name, err)
	}

	row := make(map[string]any, len(m.ListDisplay)+1)
	row["id"] = all["id"]
	for _, col := range m.ListDisplay {
		switch {
		case col == StrColumn:
			if s, ok := obj.(fmt.Stringer); ok {
				row[col] = s.String()
			}
		case m.Computed[col] != nil:
			row[col] = m.Computed[col](obj)
		default:
			row[col] = all[col]
		}
	}
	return row, nil
}

// Registry maps admin names to their configuration.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*ModelAdmin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*ModelAdmin)}
}

// Register adds a model admin. Registering the same name twice is an error.
func (r *Registry) Register(m *ModelAdmin) error {
	if m.Name == "" {
		return fmt.Errorf("register model admin: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.models[m.Name]; dup {
		return fmt.Errorf("register model admin: %q already registered", m.Name)
	}
	r.models[m.Name] = m
	return nil
}

// Get returns the model admin registered under name, or nil.
func (r *Registry) Get(name string) *ModelAdmin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.models[name]
}

// All returns every registered model admin sorted by name.
func (r *Registry) All() []*ModelAdmin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ModelAdmin, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
