// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/validation"
)

// RestaurantImage is a photo of a restaurant. At most one image per
// restaurant may be representative.
type RestaurantImage struct {
	ID               uuid.UUID `json:"id"`
	RestaurantID     uuid.UUID `json:"restaurant_id" validate:"required"`
	IsRepresentative bool      `json:"is_representative"`
	Order            *int64    `json:"order,omitempty" validate:"omitempty,gte=0"`
	Name             *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Image            string    `json:"image" validate:"required,max=100"`
	Thumbnail        *string   `json:"thumbnail,omitempty" validate:"omitempty,max=100"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Virtual field populated by the public API.
	URL string `json:"url,omitempty" validate:"-"`
}

func (i *RestaurantImage) String() string {
	return fmt.Sprintf("%s:%s", i.ID, i.Image)
}

// CheckRepresentative rejects the image when it is representative and any
// other image in siblings is too. Siblings must belong to the same
// restaurant; the image itself is skipped by ID, so re-saving the current
// representative image passes.
func (i *RestaurantImage) CheckRepresentative(siblings []RestaurantImage) error {
	if !i.IsRepresentative {
		return nil
	}
	for _, s := range siblings {
		if s.RestaurantID != i.RestaurantID || s.ID == i.ID {
			continue
		}
		if s.IsRepresentative {
			return validation.ErrMultipleRepresentativeImages
		}
	}
	return nil
}

// ReviewImage is a photo attached to a review.
type ReviewImage struct {
	ID        uuid.UUID `json:"id"`
	ReviewID  uuid.UUID `json:"review_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
	Image     string    `json:"image" validate:"required,max=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	URL string `json:"url,omitempty" validate:"-"`
}

func (i *ReviewImage) String() string {
	return fmt.Sprintf("%s:%s", i.ID, i.Image)
}
