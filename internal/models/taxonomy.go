// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// CuisineType groups restaurant categories ("Korean", "Western").
type CuisineType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required,max=20"`
}

func (c *CuisineType) String() string { return c.Name }

// RestaurantCategory belongs to a cuisine type and is deleted with it.
type RestaurantCategory struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name" validate:"required,max=20"`
	CuisineTypeID *uuid.UUID `json:"cuisine_type_id,omitempty"`

	CuisineTypeName string `json:"cuisine_type_name,omitempty" validate:"-"`
}

func (c *RestaurantCategory) String() string { return c.Name }

// Tag is a free-form label. Names are unique.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required,max=100"`
}

func (t *Tag) String() string { return t.Name }

// SocialChannel is where a review was originally published.
type SocialChannel struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required,max=100"`
}

func (s *SocialChannel) String() string { return s.Name }

// Region is an administrative area. The triple is unique.
type Region struct {
	ID           uuid.UUID `json:"id"`
	Province     string    `json:"province" validate:"required,max=20"`
	District     string    `json:"district" validate:"required,max=20"`
	Neighborhood string    `json:"neighborhood" validate:"required,max=20"`
}

func (r *Region) String() string {
	return r.Province + " " + r.District + " " + r.Neighborhood
}
