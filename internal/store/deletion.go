// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// deletion.go reports what deleting a row would do to the rows that
// reference it, following models.Relations.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/models"
)

// DeleteEffect is one line of a delete confirmation: Count rows of Table
// will be deleted (Cascade) or have Column cleared (SetNull).
type DeleteEffect struct {
	Table    string          `json:"table"`
	Column   string          `json:"column"`
	OnDelete models.OnDelete `json:"on_delete"`
	Count    int             `json:"count"`
}

// DeletionStore computes delete previews.
type DeletionStore struct {
	db *sql.DB
}

// NewDeletionStore creates a new DeletionStore.
func NewDeletionStore(db *sql.DB) *DeletionStore {
	return &DeletionStore{db: db}
}

// Preview walks the relations below table starting at id and returns the
// affected rows per relation. Cascades are followed transitively; set-null
// references stop the walk. Relations with no affected rows are omitted.
func (s *DeletionStore) Preview(ctx context.Context, table string, id uuid.UUID) ([]DeleteEffect, error) {
	effects := []DeleteEffect{}
	if err := s.walk(ctx, table, []uuid.UUID{id}, &effects); err != nil {
		return nil, fmt.Errorf("preview delete from %s: %w", table, err)
	}
	return effects, nil
}

func (s *DeletionStore) walk(ctx context.Context, table string, ids []uuid.UUID, effects *[]DeleteEffect) error {
	for _, rel := range models.ChildrenOf(table) {
		// Identifiers come from models.Relations, never from the caller.
		var count int
		if err := s.db.QueryRowContext(ctx,
			fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ANY($1)", rel.Table, rel.Column), ids,
		).Scan(&count); err != nil {
			return fmt.Errorf("count %s: %w", rel.Table, err)
		}
		if count == 0 {
			continue
		}
		*effects = append(*effects, DeleteEffect{
			Table: rel.Table, Column: rel.Column, OnDelete: rel.OnDelete, Count: count,
		})

		if rel.OnDelete != models.Cascade || len(models.ChildrenOf(rel.Table)) == 0 {
			continue
		}
		childIDs, err := s.ids(ctx, rel, ids)
		if err != nil {
			return err
		}
		if err := s.walk(ctx, rel.Table, childIDs, effects); err != nil {
			return err
		}
	}
	return nil
}

func (s *DeletionStore) ids(ctx context.Context, rel models.Relation, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE %s = ANY($1)", rel.Table, rel.Column), parentIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("select %s ids: %w", rel.Table, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", rel.Table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
