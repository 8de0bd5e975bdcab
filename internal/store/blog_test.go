// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/testutil"
)

func TestGetPostBySlug(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT * FROM "blog_post" WHERE "slug" = $1 LIMIT 1`).
		WithArgs("hello-world").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "categoryId", "likes"}).
			AddRow(int64(3), "hello-world", "Hello World", int64(1), int64(12)))
	mock.ExpectQuery(`SELECT * FROM "blog_category" WHERE "id" = $1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "General"))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "blog_comment" WHERE "postId" = $1 AND "isApproved" = true`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	post, err := s.GetPostBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", post["title"])
	assert.Equal(t, int64(4), post["comments_count"])

	category, ok := post["category"].(Row)
	require.True(t, ok)
	assert.Equal(t, "General", category["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT * FROM "blog_post" WHERE "slug" = $1 LIMIT 1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetPostBySlug(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestListApprovedComments(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT * FROM "blog_comment" WHERE "postId" = $1 AND "isApproved" = true ORDER BY "createdAt" DESC`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "content"}).
			AddRow(int64(2), "Bea", "Nice post").
			AddRow(int64(1), "Abe", "First"))

	comments, err := s.ListApprovedComments(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Bea", comments[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListApprovedComments_EmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT * FROM "blog_comment" WHERE "postId" = $1 AND "isApproved" = true ORDER BY "createdAt" DESC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	comments, err := s.ListApprovedComments(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestLikePost(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectExec(`INSERT INTO "blog_like" ("postId", "ipHash", "createdAt") VALUES ($1, $2, $3)`).
		WithArgs(int64(3), "1.2.3.4", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`UPDATE "blog_post" SET "likes" = "likes" + $1 WHERE "id" = $2 RETURNING "likes"`).
		WithArgs(2, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(int64(14)))

	likes, err := s.LikePost(context.Background(), 3, "1.2.3.4", 2, false)
	require.NoError(t, err)
	assert.Equal(t, int64(14), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePost_CountDefaultsToOne(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectExec(`INSERT INTO "blog_like" ("postId", "ipHash", "createdAt") VALUES ($1, $2, $3)`).
		WithArgs(int64(3), "1.2.3.4", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`UPDATE "blog_post" SET "likes" = "likes" + $1 WHERE "id" = $2 RETURNING "likes"`).
		WithArgs(1, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(int64(13)))

	likes, err := s.LikePost(context.Background(), 3, "1.2.3.4", -5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(13), likes)
}

func TestLikePost_DedupRejectsRepeat(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM "blog_like" WHERE "postId" = $1 AND "ipHash" = $2)`).
		WithArgs(int64(3), "1.2.3.4").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.LikePost(context.Background(), 3, "1.2.3.4", 1, true)
	assert.True(t, errors.Is(err, ErrAlreadyLiked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePost_DedupAllowsFirstLike(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM "blog_like" WHERE "postId" = $1 AND "ipHash" = $2)`).
		WithArgs(int64(3), "5.6.7.8").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO "blog_like" ("postId", "ipHash", "createdAt") VALUES ($1, $2, $3)`).
		WithArgs(int64(3), "5.6.7.8", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`UPDATE "blog_post" SET "likes" = "likes" + $1 WHERE "id" = $2 RETURNING "likes"`).
		WithArgs(1, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(int64(1)))

	likes, err := s.LikePost(context.Background(), 3, "5.6.7.8", 1, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewPost(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`UPDATE "blog_post" SET "views" = "views" + 1 WHERE "id" = $1 RETURNING "views"`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(int64(101)))

	views, err := s.ViewPost(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(101), views)
}

func TestViewPost_MissingPost(t *testing.T) {
	db, mock, cleanup := testutil.MockDB(t)
	defer cleanup()
	s := New(db)

	mock.ExpectQuery(`UPDATE "blog_post" SET "views" = "views" + 1 WHERE "id" = $1 RETURNING "views"`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"views"}))

	_, err := s.ViewPost(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
