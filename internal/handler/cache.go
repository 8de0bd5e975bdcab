// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"portfolio-api/internal/store"
)

// Cache-Control values for the CDN sitting in front of the API.
const (
	// cachePublic keeps public reads in the edge cache for an hour and
	// serves stale content for ten minutes while revalidating.
	cachePublic = "public, s-maxage=3600, stale-while-revalidate=600"
	// cachePrivate disables caching for mutations, interactions and
	// authenticated reads.
	cachePrivate = "no-store, max-age=0, must-revalidate"
)

// interactionActions bypass the cache so counters stay live.
func isInteraction(action string) bool {
	return action == "comments" || action == "like" || action == "view"
}

// cachePolicy picks the Cache-Control value for a generic-surface request.
// Only anonymous production GETs of public resources are cacheable.
func cachePolicy(method, resource, action string, hasAuth, production bool) string {
	if !production || method != http.MethodGet || hasAuth || isInteraction(action) {
		return cachePrivate
	}
	if res, ok := store.Lookup(resource); ok && res.Public {
		return cachePublic
	}
	return cachePrivate
}

// setCacheHeaders applies the cache policy for the resolved request.
func (a *API) setCacheHeaders(w http.ResponseWriter, r *http.Request, req apiRequest) {
	hasAuth := r.Header.Get("Authorization") != ""
	w.Header().Set("Cache-Control",
		cachePolicy(r.Method, req.resource, req.action, hasAuth, a.cfg.IsProduction()))
}
