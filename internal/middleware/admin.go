// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// AdminToken guards the admin API with a static bearer token checked
// against a bcrypt hash. An empty hash disables the guard; config.Load
// refuses that in production.
func AdminToken(hash string) func(http.Handler) http.Handler {
	if hash == "" {
		slog.Warn("admin API is not protected: ADMIN_TOKEN_HASH is empty")
		return func(next http.Handler) http.Handler { return next }
	}

	check := tokenCheck(hash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok || !check(token) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				writeError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenCheck reports whether a token matches hash. The SHA-256 of the last
// accepted token is compared in constant time before falling back to bcrypt.
func tokenCheck(hash string) func(token string) bool {
	var (
		mu       sync.Mutex
		accepted [sha256.Size]byte
		hasToken bool
	)
	return func(token string) bool {
		sum := sha256.Sum256([]byte(token))
		mu.Lock()
		hit := hasToken && subtle.ConstantTimeCompare(sum[:], accepted[:]) == 1
		mu.Unlock()
		if hit {
			return true
		}

		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) != nil {
			return false
		}
		mu.Lock()
		accepted, hasToken = sum, true
		mu.Unlock()
		return true
	}
}

// HashToken returns the bcrypt hash to store in ADMIN_TOKEN_HASH.
func HashToken(token string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
