// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// taxonomy.go holds the lookup entities restaurants and reviews point at:
// cuisine types, restaurant categories, tags, social channels and regions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/models"
)

// CuisineTypeStore handles cuisine type persistence.
type CuisineTypeStore struct {
	db *sql.DB
}

// NewCuisineTypeStore creates a new CuisineTypeStore.
func NewCuisineTypeStore(db *sql.DB) *CuisineTypeStore {
	return &CuisineTypeStore{db: db}
}

const cuisineTypeColumns = `id, name`

var cuisineTypeList = listSpec{
	from:         "cuisine_types",
	search:       []string{"name"},
	orderable:    map[string]string{"id": "id", "name": "name"},
	defaultOrder: "name ASC",
}

func scanCuisineType(scanner rowScanner) (*models.CuisineType, error) {
	var c models.CuisineType
	if err := scanner.Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CuisineTypeStore) List(ctx context.Context, p ListParams) ([]models.CuisineType, int, error) {
	items, total, err := runList(ctx, s.db, cuisineTypeList, cuisineTypeColumns, p, scanCuisineType)
	if err != nil {
		return nil, 0, fmt.Errorf("list cuisine types: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a cuisine type by its UUID. Returns nil if not found.
func (s *CuisineTypeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.CuisineType, error) {
	c, err := scanCuisineType(s.db.QueryRowContext(ctx,
		`SELECT `+cuisineTypeColumns+` FROM cuisine_types WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cuisine type: %w", err)
	}
	return c, nil
}

func (s *CuisineTypeStore) Create(ctx context.Context, c *models.CuisineType) (*models.CuisineType, error) {
	out, err := scanCuisineType(s.db.QueryRowContext(ctx,
		`INSERT INTO cuisine_types (name) VALUES ($1) RETURNING `+cuisineTypeColumns, c.Name))
	if err != nil {
		return nil, fmt.Errorf("create cuisine type: %w", mapError(err))
	}
	return out, nil
}

func (s *CuisineTypeStore) Update(ctx context.Context, c *models.CuisineType) (*models.CuisineType, error) {
	out, err := scanCuisineType(s.db.QueryRowContext(ctx,
		`UPDATE cuisine_types SET name = $1 WHERE id = $2 RETURNING `+cuisineTypeColumns, c.Name, c.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update cuisine type: %w", mapError(err))
	}
	return out, nil
}

// Delete removes a cuisine type. Its categories are deleted with it.
func (s *CuisineTypeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cuisine_types WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cuisine type: %w", err)
	}
	return nil
}

// RestaurantCategoryStore handles restaurant category persistence.
type RestaurantCategoryStore struct {
	db *sql.DB
}

// NewRestaurantCategoryStore creates a new RestaurantCategoryStore.
func NewRestaurantCategoryStore(db *sql.DB) *RestaurantCategoryStore {
	return &RestaurantCategoryStore{db: db}
}

const categoryColumns = `c.id, c.name, c.cuisine_type_id, COALESCE(ct.name, '')`

const categoryFrom = `restaurant_categories c LEFT JOIN cuisine_types ct ON ct.id = c.cuisine_type_id`

var categoryList = listSpec{
	from:   categoryFrom,
	search: []string{"c.name"},
	filters: map[string]filterDef{
		"cuisine_type": {clause: "c.cuisine_type_id = %s", kind: filterUUID},
	},
	orderable:    map[string]string{"name": "c.name"},
	defaultOrder: "c.name ASC",
}

func scanCategory(scanner rowScanner) (*models.RestaurantCategory, error) {
	var c models.RestaurantCategory
	if err := scanner.Scan(&c.ID, &c.Name, &c.CuisineTypeID, &c.CuisineTypeName); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RestaurantCategoryStore) List(ctx context.Context, p ListParams) ([]models.RestaurantCategory, int, error) {
	items, total, err := runList(ctx, s.db, categoryList, categoryColumns, p, scanCategory)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurant categories: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *RestaurantCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.RestaurantCategory, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM `+categoryFrom+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant category: %w", err)
	}
	return c, nil
}

func (s *RestaurantCategoryStore) Create(ctx context.Context, c *models.RestaurantCategory) (*models.RestaurantCategory, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO restaurant_categories (name, cuisine_type_id) VALUES ($1, $2) RETURNING id`,
		c.Name, c.CuisineTypeID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create restaurant category: %w", mapError(err))
	}
	return s.FindByID(ctx, id)
}

func (s *RestaurantCategoryStore) Update(ctx context.Context, c *models.RestaurantCategory) (*models.RestaurantCategory, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE restaurant_categories SET name = $1, cuisine_type_id = $2 WHERE id = $3`,
		c.Name, c.CuisineTypeID, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update restaurant category: %w", mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, c.ID)
}

// Delete removes a category. Restaurants in it keep existing with no category.
func (s *RestaurantCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurant_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restaurant category: %w", err)
	}
	return nil
}

// TagStore handles tag persistence.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name`

var tagList = listSpec{
	from:         "tags",
	search:       []string{"name"},
	orderable:    map[string]string{"id": "id", "name": "name"},
	defaultOrder: "name ASC",
}

func scanTag(scanner rowScanner) (*models.Tag, error) {
	var t models.Tag
	if err := scanner.Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TagStore) List(ctx context.Context, p ListParams) ([]models.Tag, int, error) {
	items, total, err := runList(ctx, s.db, tagList, tagColumns, p, scanTag)
	if err != nil {
		return nil, 0, fmt.Errorf("list tags: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a tag by its UUID. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// Create inserts a tag. A duplicate name fails with a "unique" field error.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	out, err := scanTag(s.db.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING `+tagColumns, t.Name))
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", mapError(err))
	}
	return out, nil
}

func (s *TagStore) Update(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	out, err := scanTag(s.db.QueryRowContext(ctx,
		`UPDATE tags SET name = $1 WHERE id = $2 RETURNING `+tagColumns, t.Name, t.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update tag: %w", mapError(err))
	}
	return out, nil
}

func (s *TagStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// SocialChannelStore handles social channel persistence.
type SocialChannelStore struct {
	db *sql.DB
}

// NewSocialChannelStore creates a new SocialChannelStore.
func NewSocialChannelStore(db *sql.DB) *SocialChannelStore {
	return &SocialChannelStore{db: db}
}

const socialChannelColumns = `id, name`

var socialChannelList = listSpec{
	from:         "social_channels",
	search:       []string{"name"},
	orderable:    map[string]string{"id": "id", "name": "name"},
	defaultOrder: "name ASC",
}

func scanSocialChannel(scanner rowScanner) (*models.SocialChannel, error) {
	var c models.SocialChannel
	if err := scanner.Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SocialChannelStore) List(ctx context.Context, p ListParams) ([]models.SocialChannel, int, error) {
	items, total, err := runList(ctx, s.db, socialChannelList, socialChannelColumns, p, scanSocialChannel)
	if err != nil {
		return nil, 0, fmt.Errorf("list social channels: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a social channel by its UUID. Returns nil if not found.
func (s *SocialChannelStore) FindByID(ctx context.Context, id uuid.UUID) (*models.SocialChannel, error) {
	c, err := scanSocialChannel(s.db.QueryRowContext(ctx,
		`SELECT `+socialChannelColumns+` FROM social_channels WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find social channel: %w", err)
	}
	return c, nil
}

func (s *SocialChannelStore) Create(ctx context.Context, c *models.SocialChannel) (*models.SocialChannel, error) {
	out, err := scanSocialChannel(s.db.QueryRowContext(ctx,
		`INSERT INTO social_channels (name) VALUES ($1) RETURNING `+socialChannelColumns, c.Name))
	if err != nil {
		return nil, fmt.Errorf("create social channel: %w", mapError(err))
	}
	return out, nil
}

func (s *SocialChannelStore) Update(ctx context.Context, c *models.SocialChannel) (*models.SocialChannel, error) {
	out, err := scanSocialChannel(s.db.QueryRowContext(ctx,
		`UPDATE social_channels SET name = $1 WHERE id = $2 RETURNING `+socialChannelColumns, c.Name, c.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update social channel: %w", mapError(err))
	}
	return out, nil
}

// Delete removes a social channel. Reviews keep existing with no channel.
func (s *SocialChannelStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM social_channels WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete social channel: %w", err)
	}
	return nil
}

// RegionStore handles region persistence.
type RegionStore struct {
	db *sql.DB
}

// NewRegionStore creates a new RegionStore.
func NewRegionStore(db *sql.DB) *RegionStore {
	return &RegionStore{db: db}
}

const regionColumns = `id, province, district, neighborhood`

var regionList = listSpec{
	from:   "regions",
	search: []string{"province", "district", "neighborhood"},
	orderable: map[string]string{
		"province":     "province",
		"district":     "district",
		"neighborhood": "neighborhood",
	},
	defaultOrder: "province ASC, district ASC, neighborhood ASC",
}

func scanRegion(scanner rowScanner) (*models.Region, error) {
	var r models.Region
	if err := scanner.Scan(&r.ID, &r.Province, &r.District, &r.Neighborhood); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RegionStore) List(ctx context.Context, p ListParams) ([]models.Region, int, error) {
	items, total, err := runList(ctx, s.db, regionList, regionColumns, p, scanRegion)
	if err != nil {
		return nil, 0, fmt.Errorf("list regions: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a region by its UUID. Returns nil if not found.
func (s *RegionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	r, err := scanRegion(s.db.QueryRowContext(ctx,
		`SELECT `+regionColumns+` FROM regions WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find region: %w", err)
	}
	return r, nil
}

// Create inserts a region. A duplicate triple fails with a "unique" field
// error on "region".
func (s *RegionStore) Create(ctx context.Context, r *models.Region) (*models.Region, error) {
	out, err := scanRegion(s.db.QueryRowContext(ctx, `
		INSERT INTO regions (province, district, neighborhood) VALUES ($1, $2, $3)
		RETURNING `+regionColumns,
		r.Province, r.District, r.Neighborhood,
	))
	if err != nil {
		return nil, fmt.Errorf("create region: %w", mapError(err))
	}
	return out, nil
}

func (s *RegionStore) Update(ctx context.Context, r *models.Region) (*models.Region, error) {
	out, err := scanRegion(s.db.QueryRowContext(ctx, `
		UPDATE regions SET province = $1, district = $2, neighborhood = $3 WHERE id = $4
		RETURNING `+regionColumns,
		r.Province, r.District, r.Neighborhood, r.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update region: %w", mapError(err))
	}
	return out, nil
}

// Delete removes a region. Restaurants in it keep existing with no region.
func (s *RegionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM regions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	return nil
}
