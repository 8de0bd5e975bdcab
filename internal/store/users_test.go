// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/testutil"
)

func userColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password", "name", "avatar", "isActive", "createdAt", "updatedAt",
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT * FROM "user" WHERE "email" = $1 LIMIT 1`).
		WithArgs("admin@example.com").
		WillReturnRows(userColumns().
			AddRow(int64(1), "admin@example.com", "secret", "Admin", nil, true, now, now))

	u, err := s.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.True(t, u.IsActive)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT * FROM "user" WHERE "email" = $1 LIMIT 1`).
		WithArgs("nobody@example.com").
		WillReturnRows(userColumns())

	_, err := s.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestGetFirstUser(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT * FROM "user" ORDER BY "id" ASC LIMIT 1`).
		WillReturnRows(userColumns().
			AddRow(int64(1), "owner@example.com", "secret", "Owner", nil, true, now, now))

	u, err := s.GetFirstUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", u.Email)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	name := "New Name"
	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE "user" SET "name" = $1, "updatedAt" = $2 WHERE "id" = $3 RETURNING *`).
		WithArgs(name, sqlmock.AnyArg(), int64(1)).
		WillReturnRows(userColumns().
			AddRow(int64(1), "owner@example.com", "secret", name, nil, true, now, now))

	u, err := s.UpdateUser(context.Background(), 1, UpdateUserParams{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, u.Name)
	assert.Equal(t, name, *u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_SkipsEmptyPassword(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	email := "new@example.com"
	empty := ""
	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE "user" SET "email" = $1, "updatedAt" = $2 WHERE "id" = $3 RETURNING *`).
		WithArgs(email, sqlmock.AnyArg(), int64(1)).
		WillReturnRows(userColumns().
			AddRow(int64(1), email, "secret", nil, nil, true, now, now))

	u, err := s.UpdateUser(context.Background(), 1, UpdateUserParams{Email: &email, Password: &empty})
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO "user" ("email", "password", "name", "isActive", "createdAt", "updatedAt")
		 VALUES ($1, $2, $3, true, $4, $4) RETURNING *`).
		WithArgs("admin@example.com", "admin", "Admin", sqlmock.AnyArg()).
		WillReturnRows(userColumns().
			AddRow(int64(1), "admin@example.com", "admin", "Admin", nil, true, now, now))

	u, err := s.CreateUser(context.Background(), "admin@example.com", "admin", "Admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestDashboardStats(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT COUNT(*) FROM "project"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(8)))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "blog_post"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "message"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT * FROM "project" ORDER BY "createdAt" DESC LIMIT $1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(int64(8), "Latest"))
	mock.ExpectQuery(`SELECT * FROM "message" ORDER BY "createdAt" DESC LIMIT $1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject"}))

	stats, err := s.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.Counts.Projects)
	assert.Equal(t, int64(4), stats.Counts.Blogs)
	assert.Equal(t, int64(2), stats.Counts.Messages)
	require.Len(t, stats.Recent.Projects, 1)
	assert.NotNil(t, stats.Recent.Messages)
	assert.Empty(t, stats.Recent.Messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
