// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rubms01/ai-restaurant/internal/validation"
)

// PostgreSQL SQLSTATE codes surfaced to admin callers as field errors.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
	pgInvalidText         = "22P02"
	pgInvalidDatetime     = "22007"
)

// representativeIndex is the partial unique index backing the
// one-representative-image rule.
const representativeIndex = "restaurant_images_one_representative"

// constraintFields names the field for constraints whose name does not
// follow the <table>_<column>_<suffix> convention.
var constraintFields = map[string]string{
	"regions_province_district_neighborhood_key": "region",
	"restaurant_images_sort_order_check":         "order",
	"restaurant_tags_pkey":                       "tag_ids",
	"restaurant_tags_tag_id_fkey":                "tag_ids",
}

// fieldFromConstraint derives the JSON field name from a constraint name.
func fieldFromConstraint(table, constraint string) string {
	if f, ok := constraintFields[constraint]; ok {
		return f
	}
	name := strings.TrimPrefix(constraint, table+"_")
	for _, suffix := range []string{"_key", "_check", "_fkey"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if name == "" {
		return constraint
	}
	return name
}

// mapError converts PostgreSQL constraint failures into validation errors.
// Anything else is returned unchanged.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == representativeIndex {
			return validation.ErrMultipleRepresentativeImages
		}
		return validation.Field(fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName), "unique", "")
	case pgCheckViolation:
		return validation.Field(fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName), "check", "")
	case pgForeignKeyViolation:
		return validation.Field(fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName), "exists", "")
	case pgNotNullViolation:
		return validation.Field(pgErr.ColumnName, "required", "")
	case pgStringTooLong:
		return validation.Field(columnOrValue(pgErr), "max", "")
	case pgNumericOutOfRange:
		return validation.Field(columnOrValue(pgErr), "check", "")
	case pgInvalidText, pgInvalidDatetime:
		return validation.Field(columnOrValue(pgErr), "invalid", "")
	}
	return err
}

// columnOrValue returns the column PostgreSQL blamed, which data errors
// usually leave empty.
func columnOrValue(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "value"
}
