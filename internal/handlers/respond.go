// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/i18n"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// errorBody is the JSON shape of every failed request. Fields maps a
// field name to its localized messages.
type errorBody struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeMessage writes a plain JSON error with no field details.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError turns err into a response. Field and invariant failures
// become 422 with messages in the language the client asked for;
// anything else is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		inv  *validation.InvariantViolation
		verr *validation.Error
	)
	switch {
	case errors.As(err, &inv):
		loc := i18n.New(i18n.Match(r.Header.Get("Accept-Language")))
		msg := loc.Invariant(inv)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  msg,
			Code:   inv.Code,
			Fields: map[string][]string{inv.Field: {msg}},
		})
	case errors.As(err, &verr):
		loc := i18n.New(i18n.Match(r.Header.Get("Accept-Language")))
		fields := make(map[string][]string, len(verr.Fields))
		for _, fe := range verr.Fields {
			fields[fe.Field] = append(fields[fe.Field], loc.Field(fe))
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  loc.Summary(),
			Code:   "invalid",
			Fields: fields,
		})
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// urlID parses a UUID URL parameter, writing 400 on failure.
func urlID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON reads a size-limited JSON body into dst, writing 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. Parse failures are
// collected into verr under the parameter name.
func queryInt(r *http.Request, name string, verr *validation.Error) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(name, "invalid", "")
		return 0
	}
	return n
}
