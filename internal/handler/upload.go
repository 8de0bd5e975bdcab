// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

// handleUpload acknowledges uploads with a placeholder descriptor. Media
// is served from the CDN configured in site settings; the API never
// stores files itself.
func (a *API) handleUpload(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"url":      "https://placehold.co/600x400",
		"fileName": "uploaded.png",
		"mimeType": "image/png",
		"size":     1024,
	})
}
