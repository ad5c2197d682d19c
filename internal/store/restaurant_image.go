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
	"github.com/rubms01/ai-restaurant/internal/validation"
)

// RestaurantImageStore handles restaurant photo persistence and keeps at
// most one representative image per restaurant.
//
// Writes lock the parent restaurant row before reading the representative
// siblings, so two concurrent writers for the same restaurant are
// serialized. The partial unique index restaurant_images_one_representative
// rejects anything that gets past the check.
type RestaurantImageStore struct {
	db *sql.DB
}

// NewRestaurantImageStore creates a new RestaurantImageStore.
func NewRestaurantImageStore(db *sql.DB) *RestaurantImageStore {
	return &RestaurantImageStore{db: db}
}

const restaurantImageColumns = `id, restaurant_id, is_representative, sort_order, name,
	image, thumbnail, created_at, updated_at`

func scanRestaurantImage(scanner rowScanner) (*models.RestaurantImage, error) {
	var i models.RestaurantImage
	err := scanner.Scan(
		&i.ID, &i.RestaurantID, &i.IsRepresentative, &i.Order, &i.Name,
		&i.Image, &i.Thumbnail, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListByRestaurant returns a restaurant's images, representative first,
// then by display order.
func (s *RestaurantImageStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantImage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+restaurantImageColumns+`
		FROM restaurant_images
		WHERE restaurant_id = $1
		ORDER BY is_representative DESC, sort_order ASC NULLS LAST, created_at ASC
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant images: %w", err)
	}
	defer rows.Close()

	items := []models.RestaurantImage{}
	for rows.Next() {
		i, err := scanRestaurantImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant image: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

// FindByID retrieves an image by its UUID. Returns nil if not found.
func (s *RestaurantImageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.RestaurantImage, error) {
	i, err := scanRestaurantImage(s.db.QueryRowContext(ctx,
		`SELECT `+restaurantImageColumns+` FROM restaurant_images WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant image: %w", err)
	}
	return i, nil
}

// Create inserts an image. A second representative image for the same
// restaurant fails with validation.ErrMultipleRepresentativeImages.
func (s *RestaurantImageStore) Create(ctx context.Context, img *models.RestaurantImage) (*models.RestaurantImage, error) {
	var out *models.RestaurantImage
	err := s.withRestaurantLock(ctx, img.RestaurantID, func(tx *sql.Tx) error {
		if err := checkRepresentative(ctx, tx, img); err != nil {
			return err
		}
		created, err := scanRestaurantImage(tx.QueryRowContext(ctx, `
			INSERT INTO restaurant_images (restaurant_id, is_representative, sort_order, name, image, thumbnail)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+restaurantImageColumns,
			img.RestaurantID, img.IsRepresentative, img.Order, img.Name, img.Image, img.Thumbnail,
		))
		if err != nil {
			return mapError(err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create restaurant image: %w", err)
	}
	return out, nil
}

// Update modifies an image. Re-saving the current representative image
// passes the check because the image itself is excluded from its
// siblings. Returns nil if the image no longer exists. The owning
// restaurant cannot be changed.
func (s *RestaurantImageStore) Update(ctx context.Context, img *models.RestaurantImage) (*models.RestaurantImage, error) {
	var out *models.RestaurantImage
	err := s.withRestaurantLock(ctx, img.RestaurantID, func(tx *sql.Tx) error {
		if err := checkRepresentative(ctx, tx, img); err != nil {
			return err
		}
		updated, err := scanRestaurantImage(tx.QueryRowContext(ctx, `
			UPDATE restaurant_images SET
				is_representative = $1, sort_order = $2, name = $3,
				image = $4, thumbnail = $5, updated_at = NOW()
			WHERE id = $6 AND restaurant_id = $7
			RETURNING `+restaurantImageColumns,
			img.IsRepresentative, img.Order, img.Name, img.Image, img.Thumbnail,
			img.ID, img.RestaurantID,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return mapError(err)
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update restaurant image: %w", err)
	}
	return out, nil
}

// SetRepresentative makes the image the restaurant's representative image,
// clearing the flag on its siblings in the same transaction. Returns nil
// if the image does not exist.
func (s *RestaurantImageStore) SetRepresentative(ctx context.Context, imageID uuid.UUID) (*models.RestaurantImage, error) {
	img, err := s.FindByID(ctx, imageID)
	if err != nil || img == nil {
		return nil, err
	}

	var out *models.RestaurantImage
	err = s.withRestaurantLock(ctx, img.RestaurantID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE restaurant_images SET is_representative = FALSE, updated_at = NOW()
			WHERE restaurant_id = $1 AND is_representative AND id <> $2
		`, img.RestaurantID, imageID); err != nil {
			return err
		}
		updated, err := scanRestaurantImage(tx.QueryRowContext(ctx, `
			UPDATE restaurant_images SET is_representative = TRUE, updated_at = NOW()
			WHERE id = $1
			RETURNING `+restaurantImageColumns, imageID,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return mapError(err)
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set representative image: %w", err)
	}
	return out, nil
}

// Delete removes an image by ID.
func (s *RestaurantImageStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurant_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant image: %w", err)
	}
	return nil
}

// withRestaurantLock runs fn in a transaction holding a row lock on the
// restaurant. A missing restaurant is reported as a field error.
func (s *RestaurantImageStore) withRestaurantLock(ctx context.Context, restaurantID uuid.UUID, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM restaurants WHERE id = $1 FOR UPDATE`, restaurantID,
	).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return validation.Field("restaurant_id", "exists", "")
	}
	if err != nil {
		return fmt.Errorf("lock restaurant: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// checkRepresentative loads the representative siblings of img and runs
// the model check. Non-representative writes skip the query.
func checkRepresentative(ctx context.Context, q querier, img *models.RestaurantImage) error {
	if !img.IsRepresentative {
		return nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT `+restaurantImageColumns+`
		FROM restaurant_images
		WHERE restaurant_id = $1 AND is_representative AND id <> $2
	`, img.RestaurantID, img.ID)
	if err != nil {
		return fmt.Errorf("load representative siblings: %w", err)
	}
	defer rows.Close()

	var siblings []models.RestaurantImage
	for rows.Next() {
		sib, err := scanRestaurantImage(rows)
		if err != nil {
			return fmt.Errorf("scan restaurant image: %w", err)
		}
		siblings = append(siblings, *sib)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return img.CheckRepresentative(siblings)
}
