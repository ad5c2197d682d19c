// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the restaurant directory entities, their display
// forms and the rules that span several rows.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Decimal places stored for fixed-point restaurant columns.
const (
	CoordinatePlaces = 12
	RatingPlaces     = 2
)

// Restaurant is a listed restaurant or one branch of a chain. Rating and
// RatingCount are aggregated elsewhere and never written by the admin.
type Restaurant struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name" validate:"required,max=100"`
	BranchName    *string         `json:"branch_name,omitempty" validate:"omitempty,max=100"`
	Description   *string         `json:"description,omitempty"`
	Address       string          `json:"address" validate:"required,max=255"`
	Feature       *string         `json:"feature,omitempty" validate:"omitempty,max=255"`
	IsClosed      bool            `json:"is_closed"`
	Latitude      decimal.Decimal `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     decimal.Decimal `json:"longitude" validate:"gte=-180,lte=180"`
	Phone         string          `json:"phone" validate:"required,e164,max=16"`
	Rating        decimal.Decimal `json:"rating"`
	RatingCount   int             `json:"rating_count" validate:"gte=0"`
	StartTime     *TimeOfDay      `json:"start_time,omitempty"`
	EndTime       *TimeOfDay      `json:"end_time,omitempty"`
	LastOrderTime *TimeOfDay      `json:"last_order_time,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	RegionID      *uuid.UUID      `json:"region_id,omitempty"`
	TagIDs        []uuid.UUID     `json:"tag_ids"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Virtual fields populated by store methods.
	Category *RestaurantCategory `json:"category,omitempty" validate:"-"`
	Region   *Region             `json:"region,omitempty" validate:"-"`
	Tags     []Tag               `json:"tags,omitempty" validate:"-"`
	Images   []RestaurantImage   `json:"images,omitempty" validate:"-"`
	Menus    []RestaurantMenu    `json:"menus,omitempty" validate:"-"`
}

// String returns the display name: "name branch" when a branch is set,
// otherwise just the name.
func (r *Restaurant) String() string {
	if r.BranchName != nil && *r.BranchName != "" {
		return r.Name + " " + *r.BranchName
	}
	return r.Name
}

// Normalize rounds the fixed-point fields to their stored precision.
func (r *Restaurant) Normalize() {
	r.Latitude = r.Latitude.Round(CoordinatePlaces)
	r.Longitude = r.Longitude.Round(CoordinatePlaces)
	r.Rating = r.Rating.Round(RatingPlaces)
}
