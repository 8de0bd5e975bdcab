// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
	"portfolio-api/internal/util"
)

// Demo credentials accepted without touching the database, so the admin
// panel stays reachable even when the database is down.
const (
	demoEmail    = "admin@example.com"
	demoPassword = "admin"

	demoToken = "demo-token"
	authToken = "fake-jwt-token"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// handleLogin authenticates the admin panel. Tokens are static: the panel
// only needs a marker to hold in local storage, authorization happens at
// the network layer.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	ip := util.ClientIP(r)
	if !a.loginLimiter.Allow(ip) {
		slog.Warn("login rate limit exceeded", "ip", ip)
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	var req loginRequest
	parseBodyInto(r, &req)
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Demo login works without a database.
	if req.Email == demoEmail && req.Password == demoPassword {
		name := "Admin"
		writeJSON(w, http.StatusOK, map[string]any{
			"token": demoToken,
			"user": map[string]any{
				"id":    1,
				"email": req.Email,
				"name":  name,
				"role":  model.RoleAdmin,
			},
		})
		return
	}

	if a.store != nil {
		user, err := a.store.GetUserByEmail(r.Context(), req.Email)
		if err == nil && user.Password == req.Password {
			writeJSON(w, http.StatusOK, map[string]any{
				"token": authToken,
				"user": map[string]any{
					"id":    user.ID,
					"email": user.Email,
					"name":  user.Name,
					"role":  model.RoleAdmin,
				},
			})
			return
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			slog.Error("login lookup failed", "error", err)
		}
	}

	writeError(w, http.StatusUnauthorized, "Invalid credentials")
}

type meUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

// handleMe reads or updates the owner account, the lowest-id user.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.getMe(w, r)
	case http.MethodPut, http.MethodPatch:
		a.updateMe(w, r)
	default:
		writeMethodNotAllowed(w)
	}
}

// getMe never fails: when the database is unreachable or empty it answers
// with the static admin identity so the panel can still render.
func (a *API) getMe(w http.ResponseWriter, r *http.Request) {
	if a.store != nil {
		user, err := a.store.GetFirstUser(r.Context())
		if err == nil {
			writeJSON(w, http.StatusOK, meResponse(user))
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("owner lookup failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":     1,
		"email":  demoEmail,
		"name":   "Admin",
		"avatar": nil,
		"role":   model.RoleAdmin,
	})
}

func (a *API) updateMe(w http.ResponseWriter, r *http.Request) {
	var req meUpdateRequest
	parseBodyInto(r, &req)
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile payload")
		return
	}

	owner, err := a.store.GetFirstUser(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("owner lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	updated, err := a.store.UpdateUser(r.Context(), owner.ID, store.UpdateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		slog.Error("owner update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, meResponse(updated))
}

func meResponse(u model.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"avatar":   u.Avatar,
		"isActive": u.IsActive,
		"role":     model.RoleAdmin,
	}
}
