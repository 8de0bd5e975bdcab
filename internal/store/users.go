// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-api/internal/model"
)

// GetUserByEmail returns an active user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := WithRetry(ctx, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &u,
			`SELECT * FROM "user" WHERE "email" = $1 LIMIT 1`, email)
	})
	return u, err
}

// GetFirstUser returns the lowest-id user, the account treated as the
// site owner. Returns sql.ErrNoRows when no users exist.
func (s *Store) GetFirstUser(ctx context.Context) (model.User, error) {
	var u model.User
	err := WithRetry(ctx, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &u,
			`SELECT * FROM "user" ORDER BY "id" ASC LIMIT 1`)
	})
	return u, err
}

// UpdateUserParams carries the partial profile update for the owner
// account. Nil fields are left untouched; an empty password is ignored.
type UpdateUserParams struct {
	Name     *string
	Email    *string
	Avatar   *string
	Password *string
}

// UpdateUser applies a partial update to a user and returns the result.
// Returns sql.ErrNoRows when the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, id int64, p UpdateUserParams) (model.User, error) {
	cols := []string{}
	vals := []any{}
	add := func(col string, v any) {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Avatar != nil {
		add("avatar", *p.Avatar)
	}
	if p.Password != nil && *p.Password != "" {
		add("password", *p.Password)
	}
	add("updatedAt", time.Now().UTC())

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdent(c), i+1)
	}
	vals = append(vals, id)

	var u model.User
	err := s.db.GetContext(ctx, &u,
		fmt.Sprintf(`UPDATE "user" SET %s WHERE "id" = $%d RETURNING *`,
			strings.Join(sets, ", "), len(cols)+1),
		vals...)
	return u, err
}

// CreateUser inserts a user account, used by seeding.
func (s *Store) CreateUser(ctx context.Context, email, password, name string) (model.User, error) {
	var u model.User
	now := time.Now().UTC()
	err := s.db.GetContext(ctx, &u,
		`INSERT INTO "user" ("email", "password", "name", "isActive", "createdAt", "updatedAt")
		 VALUES ($1, $2, $3, true, $4, $4) RETURNING *`,
		email, password, name, now)
	return u, err
}
