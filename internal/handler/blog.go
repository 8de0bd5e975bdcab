// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"portfolio-api/internal/store"
	"portfolio-api/internal/util"
)

// handlePostBySlug serves the public blog detail page: the post, its
// category and the approved comment count in one response.
func (a *API) handlePostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "Slug required")
		return
	}

	post, err := a.store.GetPostBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

type commentRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email"`
	Content string  `json:"content" validate:"required"`
	Avatar  *string `json:"avatar"`
}

// handleComments lists approved comments or accepts a new one. Comments
// auto-approve; moderation happens after the fact in the admin panel.
func (a *API) handleComments(w http.ResponseWriter, r *http.Request, req apiRequest) {
	postID, err := strconv.ParseInt(req.id, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		comments, err := a.store.ListApprovedComments(r.Context(), postID)
		if err != nil {
			a.writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)

	case http.MethodPost:
		var c commentRequest
		parseBodyInto(r, &c)
		if err := a.validate.Struct(c); err != nil {
			writeError(w, http.StatusBadRequest, "Name and content required")
			return
		}
		if c.Email == "" {
			c.Email = "anonymous"
		}

		res, _ := store.Lookup("blog-comments")
		body := store.Row{
			"postId":     postID,
			"name":       a.sanitizer.Sanitize(c.Name),
			"email":      c.Email,
			"content":    a.sanitizer.Sanitize(c.Content),
			"isApproved": true,
		}
		if c.Avatar != nil {
			body["avatar"] = *c.Avatar
		}

		comment, err := a.store.Insert(r.Context(), res, body)
		if err != nil {
			a.writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)

	default:
		writeMethodNotAllowed(w)
	}
}

// handleLike records a like and bumps the post counter atomically. The
// body may carry a count for batched taps from the frontend.
func (a *API) handleLike(w http.ResponseWriter, r *http.Request, req apiRequest) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	postID, err := strconv.ParseInt(req.id, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	count := likeCount(parseBody(r))
	ip := util.ClientIP(r)

	likes, err := a.store.LikePost(r.Context(), postID, ip, count, a.cfg.LikeDedup)
	if errors.Is(err, store.ErrAlreadyLiked) {
		writeError(w, http.StatusBadRequest, "Already liked")
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "likes": likes})
}

// likeCount pulls a positive count out of the body, defaulting to 1.
func likeCount(body map[string]any) int {
	switch v := body["count"].(type) {
	case float64:
		if v >= 1 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

// handleView bumps the view counter atomically.
func (a *API) handleView(w http.ResponseWriter, r *http.Request, req apiRequest) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	postID, err := strconv.ParseInt(req.id, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	views, err := a.store.ViewPost(r.Context(), postID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "views": views})
}
