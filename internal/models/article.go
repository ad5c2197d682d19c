// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Article is an editorial column. ShowAtIndex and IsPublished are
// independent: an article can be featured on the index while unpublished.
type Article struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title" validate:"required,max=100"`
	Slug         string    `json:"slug" validate:"omitempty,max=120"`
	PreviewImage *string   `json:"preview_image,omitempty" validate:"omitempty,max=255"`
	Content      string    `json:"content" validate:"required"`
	ShowAtIndex  bool      `json:"show_at_index"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`

	// Virtual field populated by the public API.
	ContentHTML string `json:"content_html,omitempty" validate:"-"`
}

func (a *Article) String() string {
	return fmt.Sprintf("%s - %s", a.ID, a.Title)
}
