// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go builds the admin changelist queries: free-text search, sidebar
// filters, date drill-down, ordering and pagination.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/validation"
)

// Page size limits for admin lists.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// ListParams are the changelist controls sent by the admin client.
type ListParams struct {
	Search  string
	Filters map[string]string
	Year    int
	Month   int
	Order   string // column name, "-" prefix for descending
	Limit   int
	Offset  int
}

type filterKind int

const (
	filterBool filterKind = iota
	filterUUID
)

// filterDef is a WHERE clause with a single %s where the bound parameter goes.
type filterDef struct {
	clause string
	kind   filterKind
}

// listSpec describes how one entity is listed.
type listSpec struct {
	from         string
	search       []string
	filters      map[string]filterDef
	dateColumn   string
	orderable    map[string]string
	defaultOrder string
}

type listQuery struct {
	query     string
	count     string
	args      []any
	countArgs []any
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// build renders the page and count queries for p. Unknown filters, bad
// filter values and non-orderable columns are reported as field errors.
func (l listSpec) build(columns string, p ListParams) (listQuery, error) {
	var (
		conds []string
		args  []any
		verr  = &validation.Error{}
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	// Every word must match at least one search column.
	if len(l.search) > 0 {
		for _, word := range strings.Fields(p.Search) {
			ph := next("%" + escapeLike(word) + "%")
			ors := make([]string, len(l.search))
			for i, col := range l.search {
				ors[i] = col + " ILIKE " + ph
			}
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	}

	for name, raw := range p.Filters {
		def, ok := l.filters[name]
		if !ok {
			verr.Add(name, "invalid", "")
			continue
		}
		var value any
		switch def.kind {
		case filterBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				verr.Add(name, "invalid", "")
				continue
			}
			value = b
		case filterUUID:
			id, err := uuid.Parse(raw)
			if err != nil {
				verr.Add(name, "invalid", "")
				continue
			}
			value = id
		}
		conds = append(conds, fmt.Sprintf(def.clause, next(value)))
	}

	if l.dateColumn != "" {
		if p.Year != 0 {
			conds = append(conds, fmt.Sprintf("EXTRACT(YEAR FROM %s) = %s", l.dateColumn, next(p.Year)))
		}
		if p.Month != 0 {
			if p.Year == 0 || p.Month < 1 || p.Month > 12 {
				verr.Add("month", "invalid", "")
			} else {
				conds = append(conds, fmt.Sprintf("EXTRACT(MONTH FROM %s) = %s", l.dateColumn, next(p.Month)))
			}
		}
	} else if p.Year != 0 || p.Month != 0 {
		verr.Add("year", "invalid", "")
	}

	order := l.defaultOrder
	if p.Order != "" {
		name, dir := p.Order, "ASC"
		if strings.HasPrefix(name, "-") {
			name, dir = name[1:], "DESC"
		}
		expr, ok := l.orderable[name]
		if !ok {
			verr.Add("o", "invalid", "")
		} else {
			order = expr + " " + dir
		}
	}

	if len(verr.Fields) > 0 {
		return listQuery{}, verr
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	countArgs := append([]any(nil), args...)
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s", columns, l.from, where, order)
	q += fmt.Sprintf(" LIMIT %s OFFSET %s", next(limit), next(offset))

	return listQuery{
		query:     q,
		count:     fmt.Sprintf("SELECT COUNT(*) FROM %s%s", l.from, where),
		args:      args,
		countArgs: countArgs,
	}, nil
}

type rowScanner interface{ Scan(...any) error }

// runList executes a changelist query and returns one page plus the total
// number of matching rows.
func runList[T any](ctx context.Context, db *sql.DB, spec listSpec, columns string, p ListParams, scan func(rowScanner) (*T, error)) ([]T, int, error) {
	lq, err := spec.build(columns, p)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.QueryRowContext(ctx, lq.count, lq.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rows: %w", err)
	}

	rows, err := db.QueryContext(ctx, lq.query, lq.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}
