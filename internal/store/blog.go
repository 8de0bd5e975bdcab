// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrAlreadyLiked is returned by LikePost when IP deduplication is enabled
// and the address already liked the post.
var ErrAlreadyLiked = errors.New("already liked")

// GetPostBySlug returns a published-or-draft post by slug with its category,
// current like count and approved comment count attached. Returns
// sql.ErrNoRows when no post matches.
func (s *Store) GetPostBySlug(ctx context.Context, slugVal string) (Row, error) {
	res, _ := Lookup("blog-posts")

	var post Row
	err := WithRetry(ctx, func(ctx context.Context) error {
		rows, qerr := s.queryRows(ctx, res,
			`SELECT * FROM "blog_post" WHERE "slug" = $1 LIMIT 1`, slugVal)
		if qerr != nil {
			return qerr
		}
		if len(rows) == 0 {
			return sql.ErrNoRows
		}
		post = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, res, post); err != nil {
		return nil, err
	}

	id, _ := asInt64(post["id"])
	count, err := s.CountApprovedComments(ctx, id)
	if err != nil {
		return nil, err
	}
	post["comments_count"] = count
	return post, nil
}

// CountApprovedComments counts visible comments for a post.
func (s *Store) CountApprovedComments(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := WithRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRowxContext(ctx,
			`SELECT COUNT(*) FROM "blog_comment" WHERE "postId" = $1 AND "isApproved" = true`,
			postID).Scan(&count)
	})
	return count, err
}

// ListApprovedComments returns visible comments for a post, newest first.
func (s *Store) ListApprovedComments(ctx context.Context, postID int64) ([]Row, error) {
	res, _ := Lookup("blog-comments")

	var rows []Row
	err := WithRetry(ctx, func(ctx context.Context) error {
		var qerr error
		rows, qerr = s.queryRows(ctx, res,
			`SELECT * FROM "blog_comment" WHERE "postId" = $1 AND "isApproved" = true ORDER BY "createdAt" DESC`,
			postID)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// LikePost records a like from ip and atomically increments the post's
// counter by count, returning the new total. With dedup enabled a repeat
// like from the same address returns ErrAlreadyLiked. Returns
// sql.ErrNoRows when the post does not exist.
func (s *Store) LikePost(ctx context.Context, postID int64, ip string, count int, dedup bool) (int64, error) {
	if count <= 0 {
		count = 1
	}

	if dedup {
		var exists bool
		err := s.db.QueryRowxContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM "blog_like" WHERE "postId" = $1 AND "ipHash" = $2)`,
			postID, ip).Scan(&exists)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, ErrAlreadyLiked
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO "blog_like" ("postId", "ipHash", "createdAt") VALUES ($1, $2, $3)`,
		postID, ip, time.Now().UTC()); err != nil {
		return 0, err
	}

	var likes int64
	err := s.db.QueryRowxContext(ctx,
		`UPDATE "blog_post" SET "likes" = "likes" + $1 WHERE "id" = $2 RETURNING "likes"`,
		count, postID).Scan(&likes)
	return likes, err
}

// ViewPost atomically increments the post's view counter and returns the
// new total. Returns sql.ErrNoRows when the post does not exist.
func (s *Store) ViewPost(ctx context.Context, postID int64) (int64, error) {
	var views int64
	err := s.db.QueryRowxContext(ctx,
		`UPDATE "blog_post" SET "views" = "views" + 1 WHERE "id" = $1 RETURNING "views"`,
		postID).Scan(&views)
	return views, err
}
