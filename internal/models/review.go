// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// contentPartialLen is how many characters of a review the admin list shows.
const contentPartialLen = 20

// Review is a third-party review of a restaurant.
type Review struct {
	ID              uuid.UUID  `json:"id"`
	RestaurantID    uuid.UUID  `json:"restaurant_id" validate:"required"`
	Title           string     `json:"title" validate:"required,max=100"`
	Author          string     `json:"author" validate:"required,max=100"`
	ProfileImage    *string    `json:"profile_image,omitempty" validate:"omitempty,max=100"`
	Content         string     `json:"content" validate:"required"`
	Rating          int        `json:"rating" validate:"gte=1,lte=5"`
	SocialChannelID *uuid.UUID `json:"social_channel_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	RestaurantName    string        `json:"restaurant_name,omitempty" validate:"-"`
	SocialChannelName string        `json:"social_channel_name,omitempty" validate:"-"`
	Images            []ReviewImage `json:"images,omitempty" validate:"-"`
}

func (r *Review) String() string {
	return r.Author + " : " + r.Title
}

// ContentPartial returns the first 20 characters of the review body.
func (r *Review) ContentPartial() string {
	runes := []rune(r.Content)
	if len(runes) <= contentPartialLen {
		return r.Content
	}
	return string(runes[:contentPartialLen])
}
