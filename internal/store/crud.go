// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
)

// ErrBadValue marks client-supplied values rejected at the write boundary.
var ErrBadValue = errors.New("invalid value")

// DefaultPageSize is the list page size when the client does not send one.
const DefaultPageSize = 50

// Row is a dynamically-shaped database row keyed by column name.
type Row = map[string]any

// Store executes queries against the portfolio schema.
type Store struct {
	db *sqlx.DB
}

// New creates a Store around an open connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// quoteIdent quotes a registry-declared identifier. Identifiers never come
// from request input.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// List returns a page of rows ordered by id descending, optionally filtered
// by a case-insensitive search over the resource's declared search columns.
// Reads are retried on transient errors.
func (s *Store) List(ctx context.Context, res *Resource, page, limit int, search string) ([]Row, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	var sb strings.Builder
	args := make([]any, 0, 3)
	sb.WriteString("SELECT * FROM " + quoteIdent(res.Table))
	if search != "" && len(res.Search) > 0 {
		args = append(args, "%"+search+"%")
		clauses := make([]string, len(res.Search))
		for i, col := range res.Search {
			clauses[i] = quoteIdent(col) + " ILIKE $1"
		}
		sb.WriteString(" WHERE " + strings.Join(clauses, " OR "))
	}
	sb.WriteString(fmt.Sprintf(` ORDER BY "id" DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	var rows []Row
	err := WithRetry(ctx, func(ctx context.Context) error {
		var qerr error
		rows, qerr = s.queryRows(ctx, res, sb.String(), args...)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}

	if err := s.attachRelationsAll(ctx, res, rows); err != nil {
		slog.Warn("relation fetch failed, returning bare rows",
			"resource", res.Name, "error", err)
	}
	return rows, nil
}

// Get returns a single row by id with its declared relations attached.
// Returns sql.ErrNoRows when the id does not exist. A relation fetch
// failure degrades to the bare row instead of failing the read.
func (s *Store) Get(ctx context.Context, res *Resource, id int64) (Row, error) {
	query := "SELECT * FROM " + quoteIdent(res.Table) + ` WHERE "id" = $1`

	var row Row
	err := WithRetry(ctx, func(ctx context.Context) error {
		rows, qerr := s.queryRows(ctx, res, query, id)
		if qerr != nil {
			return qerr
		}
		if len(rows) == 0 {
			return sql.ErrNoRows
		}
		row = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, res, row); err != nil {
		slog.Warn("relation fetch failed, returning bare row",
			"resource", res.Name, "id", id, "error", err)
	}
	return row, nil
}

// Latest returns the most recent row of a singleton resource, or
// sql.ErrNoRows when the table is empty.
func (s *Store) Latest(ctx context.Context, res *Resource) (Row, error) {
	query := "SELECT * FROM " + quoteIdent(res.Table) + ` ORDER BY "id" DESC LIMIT 1`

	var row Row
	err := WithRetry(ctx, func(ctx context.Context) error {
		rows, qerr := s.queryRows(ctx, res, query)
		if qerr != nil {
			return qerr
		}
		if len(rows) == 0 {
			return sql.ErrNoRows
		}
		row = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a row from the writable subset of body and returns it.
// An empty payload inserts schema defaults.
func (s *Store) Insert(ctx context.Context, res *Resource, body Row) (Row, error) {
	cols, vals, err := prepareWrite(res, body, true)
	if err != nil {
		return nil, err
	}

	var query string
	if len(cols) == 0 {
		query = "INSERT INTO " + quoteIdent(res.Table) + " DEFAULT VALUES RETURNING *"
	} else {
		quoted := make([]string, len(cols))
		marks := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = quoteIdent(c)
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			quoteIdent(res.Table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	}

	rows, err := s.queryRows(ctx, res, query, vals...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", res.Table)
	}
	return rows[0], nil
}

// Update applies the writable subset of body to the row with the given id
// and returns the updated row. The resource's updated-at column, when
// declared, is stamped even if the client did not send it. Returns
// sql.ErrNoRows when the id does not exist.
func (s *Store) Update(ctx context.Context, res *Resource, id int64, body Row) (Row, error) {
	cols, vals, err := prepareWrite(res, body, false)
	if err != nil {
		return nil, err
	}

	if res.UpdatedAt != "" && !contains(cols, res.UpdatedAt) {
		cols = append(cols, res.UpdatedAt)
		vals = append(vals, time.Now().UTC())
	}

	if len(cols) == 0 {
		// Nothing to write: treat as a no-op update and return the row.
		return s.fetchByID(ctx, res, id)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdent(c), i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		quoteIdent(res.Table), strings.Join(sets, ", "), quoteIdent("id"), len(cols)+1)
	vals = append(vals, id)

	rows, err := s.queryRows(ctx, res, query, vals...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return rows[0], nil
}

// UpsertLatest updates the most recent row of a singleton resource, or
// inserts the first row when the table is empty. The second return value
// reports whether a row was created.
func (s *Store) UpsertLatest(ctx context.Context, res *Resource, body Row) (Row, bool, error) {
	var latestID int64
	query := "SELECT " + quoteIdent("id") + " FROM " + quoteIdent(res.Table) + ` ORDER BY "id" DESC LIMIT 1`
	err := WithRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRowxContext(ctx, query).Scan(&latestID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		row, ierr := s.Insert(ctx, res, body)
		return row, true, ierr
	}
	if err != nil {
		return nil, false, err
	}

	row, err := s.Update(ctx, res, latestID, body)
	return row, false, err
}

// Delete removes a row by id. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, res *Resource, id int64) error {
	query := "DELETE FROM " + quoteIdent(res.Table) + ` WHERE "id" = $1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

// DeleteBulk removes all rows whose ids appear in ids and returns the
// number of rows actually deleted.
func (s *Store) DeleteBulk(ctx context.Context, res *Resource, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM "+quoteIdent(res.Table)+` WHERE "id" IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("building bulk delete: %w", err)
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// queryRows runs a query and scans every row into a map, normalizing
// driver byte slices and sanitizing JSON array columns.
func (s *Store) queryRows(ctx context.Context, res *Resource, query string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		normalizeRow(res, row)
		out = append(out, row)
	}
	return out, rows.Err()
}

// fetchByID reads one row without relations.
func (s *Store) fetchByID(ctx context.Context, res *Resource, id int64) (Row, error) {
	rows, err := s.queryRows(ctx, res, "SELECT * FROM "+quoteIdent(res.Table)+` WHERE "id" = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return rows[0], nil
}

// attachRelations loads each declared belongs-to row and attaches it under
// the relation's field name. A null foreign key attaches an explicit null.
func (s *Store) attachRelations(ctx context.Context, res *Resource, row Row) error {
	for _, rel := range res.Relations {
		fk, ok := asInt64(row[rel.FK])
		if !ok {
			row[rel.Field] = nil
			continue
		}
		related, err := s.queryRows(ctx, res,
			"SELECT * FROM "+quoteIdent(rel.Table)+` WHERE "id" = $1`, fk)
		if err != nil {
			return fmt.Errorf("loading %s: %w", rel.Field, err)
		}
		if len(related) == 0 {
			row[rel.Field] = nil
			continue
		}
		row[rel.Field] = related[0]
	}
	return nil
}

// attachRelationsAll attaches the declared belongs-to rows for a whole page,
// loading each relation table once for the page's distinct foreign keys.
func (s *Store) attachRelationsAll(ctx context.Context, res *Resource, rows []Row) error {
	for _, rel := range res.Relations {
		var fks []int64
		seen := make(map[int64]bool)
		for _, row := range rows {
			fk, ok := asInt64(row[rel.FK])
			if !ok {
				row[rel.Field] = nil
				continue
			}
			if !seen[fk] {
				seen[fk] = true
				fks = append(fks, fk)
			}
		}
		if len(fks) == 0 {
			continue
		}

		query, args, err := sqlx.In("SELECT * FROM "+quoteIdent(rel.Table)+` WHERE "id" IN (?)`, fks)
		if err != nil {
			return fmt.Errorf("loading %s: %w", rel.Field, err)
		}
		related, err := s.queryRows(ctx, res, s.db.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("loading %s: %w", rel.Field, err)
		}
		byID := make(map[int64]Row, len(related))
		for _, r := range related {
			if id, ok := asInt64(r["id"]); ok {
				byID[id] = r
			}
		}

		for _, row := range rows {
			fk, ok := asInt64(row[rel.FK])
			if !ok {
				continue
			}
			if match, ok := byID[fk]; ok {
				row[rel.Field] = match
			} else {
				row[rel.Field] = nil
			}
		}
	}
	return nil
}

// prepareWrite filters body down to the resource's writable columns,
// normalizes JSON array columns, and on insert derives a missing slug
// from the declared source column.
func prepareWrite(res *Resource, body Row, insert bool) ([]string, []any, error) {
	var cols []string
	var vals []any

	// Iterate declared columns so the generated SQL is deterministic.
	for _, col := range res.Columns {
		v, ok := body[col]
		if !ok {
			continue
		}
		if res.IsJSONArray(col) {
			text, err := NormalizeArrayText(v)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: column %q: %v", ErrBadValue, col, err)
			}
			v = text
		}
		cols = append(cols, col)
		vals = append(vals, v)
	}

	if insert && res.SlugFrom != "" && res.HasColumn("slug") && !hasNonEmpty(body, "slug") {
		if src, ok := body[res.SlugFrom].(string); ok && src != "" {
			derived := slug.Make(src)
			if i := indexOf(cols, "slug"); i >= 0 {
				vals[i] = derived
			} else {
				cols = append(cols, "slug")
				vals = append(vals, derived)
			}
		}
	}

	return cols, vals, nil
}

func hasNonEmpty(body Row, key string) bool {
	v, ok := body[key]
	if !ok {
		return false
	}
	s, isStr := v.(string)
	return !isStr || s != ""
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// asInt64 coerces the numeric types drivers hand back for integer columns.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// normalizeRow converts driver byte slices to strings and repairs JSON
// array columns so they always round-trip as array text.
func normalizeRow(res *Resource, row Row) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	for _, col := range res.JSONArrays {
		if s, ok := row[col].(string); ok {
			row[col] = SafeArrayText(s)
		}
	}
}
