// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/models"
)

// RestaurantMenuStore handles menu item persistence.
type RestaurantMenuStore struct {
	db *sql.DB
}

// NewRestaurantMenuStore creates a new RestaurantMenuStore.
func NewRestaurantMenuStore(db *sql.DB) *RestaurantMenuStore {
	return &RestaurantMenuStore{db: db}
}

const restaurantMenuColumns = `id, restaurant_id, name, price, image, created_at, updated_at`

func scanRestaurantMenu(scanner rowScanner) (*models.RestaurantMenu, error) {
	var m models.RestaurantMenu
	err := scanner.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Image, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByRestaurant returns a restaurant's menu in insertion order.
func (s *RestaurantMenuStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenu, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+restaurantMenuColumns+`
		FROM restaurant_menus
		WHERE restaurant_id = $1
		ORDER BY created_at ASC, name ASC
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant menus: %w", err)
	}
	defer rows.Close()

	items := []models.RestaurantMenu{}
	for rows.Next() {
		m, err := scanRestaurantMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant menu: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindByID retrieves a menu item by its UUID. Returns nil if not found.
func (s *RestaurantMenuStore) FindByID(ctx context.Context, id uuid.UUID) (*models.RestaurantMenu, error) {
	m, err := scanRestaurantMenu(s.db.QueryRowContext(ctx,
		`SELECT `+restaurantMenuColumns+` FROM restaurant_menus WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant menu: %w", err)
	}
	return m, nil
}

func (s *RestaurantMenuStore) Create(ctx context.Context, m *models.RestaurantMenu) (*models.RestaurantMenu, error) {
	out, err := scanRestaurantMenu(s.db.QueryRowContext(ctx, `
		INSERT INTO restaurant_menus (restaurant_id, name, price, image)
		VALUES ($1, $2, $3, $4)
		RETURNING `+restaurantMenuColumns,
		m.RestaurantID, m.Name, m.Price, m.Image,
	))
	if err != nil {
		return nil, fmt.Errorf("create restaurant menu: %w", mapError(err))
	}
	return out, nil
}

// Update modifies a menu item within its restaurant. Returns nil if not found.
func (s *RestaurantMenuStore) Update(ctx context.Context, m *models.RestaurantMenu) (*models.RestaurantMenu, error) {
	out, err := scanRestaurantMenu(s.db.QueryRowContext(ctx, `
		UPDATE restaurant_menus SET name = $1, price = $2, image = $3, updated_at = NOW()
		WHERE id = $4 AND restaurant_id = $5
		RETURNING `+restaurantMenuColumns,
		m.Name, m.Price, m.Image, m.ID, m.RestaurantID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update restaurant menu: %w", mapError(err))
	}
	return out, nil
}

func (s *RestaurantMenuStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurant_menus WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant menu: %w", err)
	}
	return nil
}
