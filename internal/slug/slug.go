// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for article titles.
// Letters of any script are kept, so Korean titles produce Hangul slugs.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLen is the longest slug Generate returns, in runes.
const MaxLen = 120

// Generate creates a URL-friendly slug from the given string.
// Example: "본스테이크 강남점 오픈!" → "본스테이크-강남점-오픈"
func Generate(s string) string {
	s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	hyphen := false
	n := 0
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sep := hyphen && b.Len() > 0
			need := 1
			if sep {
				need = 2
			}
			if n+need > MaxLen {
				return strings.Trim(b.String(), "-")
			}
			if sep {
				b.WriteByte('-')
				n++
			}
			hyphen = false
			b.WriteRune(r)
			n++
		case r == ' ' || r == '-' || r == '_':
			hyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// Unique returns Generate(title), suffixed with -2, -3, ... until taken
// reports the candidate as free.
func Unique(ctx context.Context, title string, taken func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := Generate(title)
	if base == "" {
		base = "article"
	}
	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
