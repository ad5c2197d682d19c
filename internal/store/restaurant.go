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

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RestaurantStore handles restaurant persistence, including the tag set.
type RestaurantStore struct {
	db *sql.DB
}

// NewRestaurantStore creates a new RestaurantStore with the given database connection.
func NewRestaurantStore(db *sql.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

const restaurantColumns = `r.id, r.name, r.branch_name, r.description, r.address, r.feature,
	r.is_closed, r.latitude, r.longitude, r.phone, r.rating, r.rating_count,
	r.start_time, r.end_time, r.last_order_time, r.category_id, r.region_id,
	r.created_at, r.updated_at`

var restaurantList = listSpec{
	from:   "restaurants r",
	search: []string{"r.name", "r.branch_name"},
	filters: map[string]filterDef{
		"tags":      {clause: "EXISTS (SELECT 1 FROM restaurant_tags rt WHERE rt.restaurant_id = r.id AND rt.tag_id = %s)", kind: filterUUID},
		"is_closed": {clause: "r.is_closed = %s", kind: filterBool},
		"category":  {clause: "r.category_id = %s", kind: filterUUID},
		"region":    {clause: "r.region_id = %s", kind: filterUUID},
	},
	orderable: map[string]string{
		"id":           "r.id",
		"name":         "r.name",
		"branch_name":  "r.branch_name",
		"is_closed":    "r.is_closed",
		"phone":        "r.phone",
		"rating":       "r.rating",
		"rating_count": "r.rating_count",
	},
	defaultOrder: "r.created_at DESC",
}

func scanRestaurant(scanner rowScanner) (*models.Restaurant, error) {
	var r models.Restaurant
	err := scanner.Scan(
		&r.ID, &r.Name, &r.BranchName, &r.Description, &r.Address, &r.Feature,
		&r.IsClosed, &r.Latitude, &r.Longitude, &r.Phone, &r.Rating, &r.RatingCount,
		&r.StartTime, &r.EndTime, &r.LastOrderTime, &r.CategoryID, &r.RegionID,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns one admin page of restaurants and the total match count.
func (s *RestaurantStore) List(ctx context.Context, p ListParams) ([]models.Restaurant, int, error) {
	items, total, err := runList(ctx, s.db, restaurantList, restaurantColumns, p, scanRestaurant)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a restaurant with its tags. Returns nil if not found.
func (s *RestaurantStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	r, err := scanRestaurant(s.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants r WHERE r.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant by id: %w", err)
	}

	tags, err := listTags(ctx, s.db, r.ID)
	if err != nil {
		return nil, err
	}
	r.Tags = tags
	r.TagIDs = make([]uuid.UUID, len(tags))
	for i, t := range tags {
		r.TagIDs[i] = t.ID
	}
	return r, nil
}

// Exists reports whether a restaurant with id exists.
func (s *RestaurantStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check restaurant: %w", err)
	}
	return exists, nil
}

// Create inserts a restaurant and its tag set in one transaction. Rating
// and rating count start at zero regardless of the input.
func (s *RestaurantStore) Create(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	r.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: begin tx: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO restaurants (
			name, branch_name, description, address, feature, is_closed,
			latitude, longitude, phone, start_time, end_time, last_order_time,
			category_id, region_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		r.Name, r.BranchName, r.Description, r.Address, r.Feature, r.IsClosed,
		r.Latitude, r.Longitude, r.Phone, r.StartTime, r.EndTime, r.LastOrderTime,
		r.CategoryID, r.RegionID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", mapError(err))
	}

	if err := setTags(ctx, tx, id, r.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create restaurant: commit: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update modifies a restaurant and replaces its tag set. Rating fields are
// never written. Returns nil if the restaurant no longer exists.
func (s *RestaurantStore) Update(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	r.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update restaurant: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE restaurants SET
			name = $1, branch_name = $2, description = $3, address = $4, feature = $5,
			is_closed = $6, latitude = $7, longitude = $8, phone = $9,
			start_time = $10, end_time = $11, last_order_time = $12,
			category_id = $13, region_id = $14, updated_at = NOW()
		WHERE id = $15`,
		r.Name, r.BranchName, r.Description, r.Address, r.Feature,
		r.IsClosed, r.Latitude, r.Longitude, r.Phone,
		r.StartTime, r.EndTime, r.LastOrderTime,
		r.CategoryID, r.RegionID, r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update restaurant: %w", mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	if err := setTags(ctx, tx, r.ID, r.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update restaurant: commit: %w", err)
	}
	return s.FindByID(ctx, r.ID)
}

// Delete removes a restaurant. Images, menus, reviews and tag links go
// with it through the foreign keys.
func (s *RestaurantStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

// setTags replaces the tag set of a restaurant.
func setTags(ctx context.Context, q querier, restaurantID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM restaurant_tags WHERE restaurant_id = $1`, restaurantID,
	); err != nil {
		return fmt.Errorf("clear restaurant tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO restaurant_tags (restaurant_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, restaurantID, tagID,
		); err != nil {
			return fmt.Errorf("add restaurant tag: %w", mapError(err))
		}
	}
	return nil
}

func listTags(ctx context.Context, q querier, restaurantID uuid.UUID) ([]models.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN restaurant_tags rt ON rt.tag_id = t.id
		WHERE rt.restaurant_id = $1
		ORDER BY t.name
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}
