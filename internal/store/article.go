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

// ArticleStore handles editorial column persistence.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, slug, preview_image, content, show_at_index,
	is_published, created_at, modified_at`

var articleList = listSpec{
	from:   "articles",
	search: []string{"title"},
	filters: map[string]filterDef{
		"show_at_index": {clause: "show_at_index = %s", kind: filterBool},
		"is_published":  {clause: "is_published = %s", kind: filterBool},
	},
	dateColumn: "created_at",
	orderable: map[string]string{
		"id":            "id",
		"title":         "title",
		"show_at_index": "show_at_index",
		"is_published":  "is_published",
		"created_at":    "created_at",
		"modified_at":   "modified_at",
	},
	defaultOrder: "created_at DESC",
}

func scanArticle(scanner rowScanner) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.PreviewImage, &a.Content, &a.ShowAtIndex,
		&a.IsPublished, &a.CreatedAt, &a.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns one admin page of articles and the total match count.
func (s *ArticleStore) List(ctx context.Context, p ListParams) ([]models.Article, int, error) {
	items, total, err := runList(ctx, s.db, articleList, articleColumns, p, scanArticle)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return items, total, nil
}

// ListPublished returns published articles, newest first. With indexOnly
// it is limited to articles featured on the index page.
func (s *ArticleStore) ListPublished(ctx context.Context, indexOnly bool) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE is_published AND ($1 = FALSE OR show_at_index)
		ORDER BY created_at DESC
	`, indexOnly)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	defer rows.Close()

	items := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindPublishedBySlug retrieves a published article by slug. Returns nil
// if not found or unpublished.
func (s *ArticleStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = $1 AND is_published`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// SlugExists reports whether another article already uses slug.
func (s *ArticleStore) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new article and returns it with the generated ID.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	out, err := scanArticle(s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, slug, preview_image, content, show_at_index, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.PreviewImage, a.Content, a.ShowAtIndex, a.IsPublished,
	))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", mapError(err))
	}
	return out, nil
}

// Update modifies an existing article. Returns nil if it no longer exists.
func (s *ArticleStore) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	out, err := scanArticle(s.db.QueryRowContext(ctx, `
		UPDATE articles SET
			title = $1, slug = $2, preview_image = $3, content = $4,
			show_at_index = $5, is_published = $6, modified_at = NOW()
		WHERE id = $7
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.PreviewImage, a.Content, a.ShowAtIndex, a.IsPublished, a.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", mapError(err))
	}
	return out, nil
}

// Delete removes an article by ID.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// MarkPublished publishes every article in ids and returns how many rows
// changed. Already published articles are left untouched.
func (s *ArticleStore) MarkPublished(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET is_published = TRUE, modified_at = NOW()
		WHERE id = ANY($1) AND NOT is_published
	`, ids)
	if err != nil {
		return 0, fmt.Errorf("mark articles published: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark articles published: %w", err)
	}
	return n, nil
}
