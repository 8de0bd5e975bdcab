// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"
)

// handleHealth reports liveness. It deliberately avoids the database so
// probes stay green while the provider scales the pool from zero.
func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	// Probe responses must never be served from the edge cache.
	w.Header().Set("Cache-Control", cachePrivate)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
