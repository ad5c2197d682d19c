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

// ReviewStore handles review persistence. Reads join the restaurant and
// social channel names for display.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = `rv.id, rv.restaurant_id, rv.title, rv.author, rv.profile_image,
	rv.content, rv.rating, rv.social_channel_id, rv.created_at, rv.updated_at,
	r.name, COALESCE(sc.name, '')`

const reviewFrom = `reviews rv
	JOIN restaurants r ON r.id = rv.restaurant_id
	LEFT JOIN social_channels sc ON sc.id = rv.social_channel_id`

var reviewList = listSpec{
	from:   reviewFrom,
	search: []string{"rv.title", "rv.author", "r.name"},
	filters: map[string]filterDef{
		"restaurant":     {clause: "rv.restaurant_id = %s", kind: filterUUID},
		"social_channel": {clause: "rv.social_channel_id = %s", kind: filterUUID},
	},
	dateColumn: "rv.created_at",
	orderable: map[string]string{
		"id":              "rv.id",
		"restaurant_name": "r.name",
		"author":          "rv.author",
		"rating":          "rv.rating",
	},
	defaultOrder: "rv.created_at DESC",
}

func scanReview(scanner rowScanner) (*models.Review, error) {
	var rv models.Review
	err := scanner.Scan(
		&rv.ID, &rv.RestaurantID, &rv.Title, &rv.Author, &rv.ProfileImage,
		&rv.Content, &rv.Rating, &rv.SocialChannelID, &rv.CreatedAt, &rv.UpdatedAt,
		&rv.RestaurantName, &rv.SocialChannelName,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// List returns one admin page of reviews and the total match count.
func (s *ReviewStore) List(ctx context.Context, p ListParams) ([]models.Review, int, error) {
	items, total, err := runList(ctx, s.db, reviewList, reviewColumns, p, scanReview)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return items, total, nil
}

// ListByRestaurant returns a restaurant's reviews, newest first.
func (s *ReviewStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM `+reviewFrom+`
		WHERE rv.restaurant_id = $1
		ORDER BY rv.created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant reviews: %w", err)
	}
	defer rows.Close()

	items := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, *rv)
	}
	return items, rows.Err()
}

// FindByID retrieves a review by its UUID. Returns nil if not found.
func (s *ReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	rv, err := scanReview(s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM `+reviewFrom+` WHERE rv.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

// Create inserts a review. A rating outside 1..5 fails with a "check"
// field error even when the caller skipped struct validation.
func (s *ReviewStore) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (restaurant_id, title, author, profile_image, content, rating, social_channel_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rv.RestaurantID, rv.Title, rv.Author, rv.ProfileImage, rv.Content, rv.Rating, rv.SocialChannelID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", mapError(err))
	}
	return s.FindByID(ctx, id)
}

// Update modifies a review. Returns nil if not found.
func (s *ReviewStore) Update(ctx context.Context, rv *models.Review) (*models.Review, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET
			restaurant_id = $1, title = $2, author = $3, profile_image = $4,
			content = $5, rating = $6, social_channel_id = $7, updated_at = NOW()
		WHERE id = $8`,
		rv.RestaurantID, rv.Title, rv.Author, rv.ProfileImage,
		rv.Content, rv.Rating, rv.SocialChannelID, rv.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, rv.ID)
}

// Delete removes a review and, through the foreign key, its images.
func (s *ReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// ReviewImageStore handles review photo persistence.
type ReviewImageStore struct {
	db *sql.DB
}

// NewReviewImageStore creates a new ReviewImageStore.
func NewReviewImageStore(db *sql.DB) *ReviewImageStore {
	return &ReviewImageStore{db: db}
}

const reviewImageColumns = `id, review_id, name, image, created_at, updated_at`

func scanReviewImage(scanner rowScanner) (*models.ReviewImage, error) {
	var i models.ReviewImage
	if err := scanner.Scan(&i.ID, &i.ReviewID, &i.Name, &i.Image, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListByReview returns a review's images in upload order.
func (s *ReviewImageStore) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]models.ReviewImage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewImageColumns+`
		FROM review_images
		WHERE review_id = $1
		ORDER BY created_at ASC
	`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list review images: %w", err)
	}
	defer rows.Close()

	items := []models.ReviewImage{}
	for rows.Next() {
		i, err := scanReviewImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review image: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

// FindByID retrieves a review image by its UUID. Returns nil if not found.
func (s *ReviewImageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ReviewImage, error) {
	i, err := scanReviewImage(s.db.QueryRowContext(ctx,
		`SELECT `+reviewImageColumns+` FROM review_images WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review image: %w", err)
	}
	return i, nil
}

func (s *ReviewImageStore) Create(ctx context.Context, i *models.ReviewImage) (*models.ReviewImage, error) {
	out, err := scanReviewImage(s.db.QueryRowContext(ctx, `
		INSERT INTO review_images (review_id, name, image) VALUES ($1, $2, $3)
		RETURNING `+reviewImageColumns,
		i.ReviewID, i.Name, i.Image,
	))
	if err != nil {
		return nil, fmt.Errorf("create review image: %w", mapError(err))
	}
	return out, nil
}

// Update modifies a review image within its review. Returns nil if not found.
func (s *ReviewImageStore) Update(ctx context.Context, i *models.ReviewImage) (*models.ReviewImage, error) {
	out, err := scanReviewImage(s.db.QueryRowContext(ctx, `
		UPDATE review_images SET name = $1, image = $2, updated_at = NOW()
		WHERE id = $3 AND review_id = $4
		RETURNING `+reviewImageColumns,
		i.Name, i.Image, i.ID, i.ReviewID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update review image: %w", mapError(err))
	}
	return out, nil
}

func (s *ReviewImageStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM review_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review image: %w", err)
	}
	return nil
}
