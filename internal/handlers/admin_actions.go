// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/cache"
)

type actionRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type actionResponse struct {
	Action  string `json:"action"`
	Updated int64  `json:"updated"`
}

// ArticleAction runs a bulk action on the selected articles. The URL uses
// the hyphenated action name, e.g. make-published.
func (a *Admin) ArticleAction(w http.ResponseWriter, r *http.Request) {
	name := strings.ReplaceAll(chi.URLParam(r, "action"), "-", "_")
	model := a.registry.Get(admin.Articles)
	if model == nil || !model.HasAction(name) {
		writeMessage(w, http.StatusNotFound, "unknown action")
		return
	}

	var req actionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		writeMessage(w, http.StatusBadRequest, "no objects selected")
		return
	}

	switch name {
	case admin.ActionMakePublished:
		n, err := a.stores.Articles.MarkPublished(r.Context(), req.IDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if n > 0 {
			a.invalidatePrefix(r.Context(), admin.Articles, uuid.Nil, "update", cache.ArticlesPrefix)
		}
		writeJSON(w, http.StatusOK, actionResponse{Action: name, Updated: n})
	default:
		writeMessage(w, http.StatusNotFound, "unknown action")
	}
}
