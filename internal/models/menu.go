// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RestaurantMenu is one dish on a restaurant's menu. Price is in won.
type RestaurantMenu struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=100"`
	Price        int64     `json:"price" validate:"gte=0"`
	Image        *string   `json:"image,omitempty" validate:"omitempty,max=100"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *RestaurantMenu) String() string {
	image := ""
	if m.Image != nil {
		image = *m.Image
	}
	return fmt.Sprintf("%s:%s", m.ID, image)
}
