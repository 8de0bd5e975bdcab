// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
)

// handleDashboardStats aggregates entity counts and recent activity for
// the admin dashboard landing page.
func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.GetDashboardStats(r.Context())
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleEvents serves the newest event log entries for the admin panel.
func (a *API) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := a.store.RecentEvents(r.Context(), limit)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
