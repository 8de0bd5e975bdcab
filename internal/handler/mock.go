// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"time"
)

// handleMock serves canned responses when MOCK_DB is enabled, so the
// frontend can be developed without a database. Health, upload and AI
// pass through because they never touch storage. Returns true when the
// request was handled.
func (a *API) handleMock(w http.ResponseWriter, r *http.Request, req apiRequest) bool {
	if req.resource == "auth" {
		if req.action == "login" {
			body := parseBody(r)
			email, _ := body["email"].(string)
			if email == "" {
				email = "mock@example.com"
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "mock-jwt-token",
				"user": map[string]any{
					"id":    999,
					"email": email,
					"name":  "Mock User",
					"role":  "admin",
				},
			})
			return true
		}
		if req.action == "me" {
			writeJSON(w, http.StatusOK, map[string]any{
				"id":    999,
				"email": "mock@example.com",
				"name":  "Mock User",
				"role":  "admin",
			})
			return true
		}
	}

	if req.resource == "admin" && req.action == "dashboard-stats" {
		writeJSON(w, http.StatusOK, map[string]any{
			"counts":         map[string]any{"projects": 10, "blogs": 5, "messages": 3},
			"recentProjects": []any{},
			"recentMessages": []any{},
		})
		return true
	}

	// Generic mock CRUD for everything except the storage-free routes.
	if req.resource == "health" || req.resource == "upload" || req.resource == "ai" {
		return false
	}

	now := time.Now().UTC()
	switch r.Method {
	case http.MethodPost:
		body := parseBody(r)
		body["id"] = now.UnixMilli()
		body["createdAt"] = now
		writeJSON(w, http.StatusCreated, body)
	case http.MethodPut, http.MethodPatch:
		body := parseBody(r)
		id, err := strconv.ParseInt(req.id, 10, 64)
		if err != nil || id == 0 {
			id = 1
		}
		body["id"] = id
		body["updatedAt"] = now
		writeJSON(w, http.StatusOK, body)
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case http.MethodGet:
		if req.id != "" {
			id, _ := strconv.ParseInt(req.id, 10, 64)
			writeJSON(w, http.StatusOK, map[string]any{
				"id":        id,
				"title":     "Mock Item",
				"name":      "Mock Item",
				"createdAt": now,
			})
			return true
		}
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id":        1,
			"title":     "Mock Item 1",
			"name":      "Mock Item 1",
			"createdAt": now,
		}})
	default:
		writeMethodNotAllowed(w)
	}
	return true
}
