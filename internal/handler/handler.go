// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the portfolio REST API: one generic CRUD
// surface over the resource registry plus special routes for auth, blog
// interactions, dashboard stats, uploads and AI content generation.
package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"portfolio-api/internal/ai"
	"portfolio-api/internal/config"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/store"
)

// API holds shared dependencies for all route handlers and implements
// http.Handler. All routing happens in ServeHTTP because clients address
// resources both by path and by query string.
type API struct {
	cfg          *config.Config
	store        *store.Store
	ai           *ai.Client
	validate     *validator.Validate
	sanitizer    *bluemonday.Policy
	loginLimiter *middleware.IPRateLimiter
}

// NewAPI creates the API handler. The store may be nil in mock mode.
func NewAPI(cfg *config.Config, s *store.Store, aiClient *ai.Client) *API {
	return &API{
		cfg:          cfg,
		store:        s,
		ai:           aiClient,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		sanitizer:    bluemonday.UGCPolicy(),
		loginLimiter: middleware.NewIPRateLimiter(1, 10),
	}
}

// ServeHTTP resolves the addressed resource and dispatches to the special
// routes first, then to the generic CRUD surface. Mock mode intercepts
// everything that would touch the database.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := resolveRequest(r)

	if a.cfg.MockDB && a.handleMock(w, r, req) {
		return
	}

	// Item interactions are addressed by path (/blog-posts/7/like) or by
	// query string (?resource=blog-posts&id=7&action=like).
	interaction := req.sub
	if interaction == "" {
		interaction = req.action
	}

	switch {
	case req.resource == "blog-posts" && req.action == "by_slug":
		a.handlePostBySlug(w, r)
		return
	case req.resource == "blog-posts" && req.id != "" && interaction == "comments":
		a.handleComments(w, r, req)
		return
	case req.resource == "blog-posts" && req.id != "" && interaction == "like":
		a.handleLike(w, r, req)
		return
	case req.resource == "blog-posts" && req.id != "" && interaction == "view":
		a.handleView(w, r, req)
		return
	case req.resource == "projects" && req.sub == "summaries":
		// Project summaries live client-side for now; acknowledge the call.
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Summary created (mock)",
		})
		return
	case req.resource == "auth" && req.action == "login":
		a.handleLogin(w, r)
		return
	case req.resource == "auth" && req.action == "me":
		a.handleMe(w, r)
		return
	case req.resource == "admin" && req.action == "dashboard-stats":
		a.handleDashboardStats(w, r)
		return
	case req.resource == "admin" && req.action == "events":
		a.handleEvents(w, r)
		return
	case req.resource == "upload":
		a.handleUpload(w, r)
		return
	case req.resource == "ai":
		a.handleAI(w, r, req)
		return
	case req.resource == "health":
		a.handleHealth(w, r)
		return
	}

	a.handleResource(w, r, req)
}
