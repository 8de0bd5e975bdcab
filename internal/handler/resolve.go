// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// apiRequest is the resolved address of one API call.
type apiRequest struct {
	resource string
	id       string
	action   string
	sub      string // sub-resource after a numeric id, e.g. /projects/1/summaries
}

// resolveRequest extracts resource, id and action. Query parameters take
// precedence for backward compatibility with clients that call
// /api?resource=projects&id=1; otherwise the path is parsed, skipping a
// leading "api" segment.
func resolveRequest(r *http.Request) apiRequest {
	q := r.URL.Query()
	req := apiRequest{
		resource: q.Get("resource"),
		id:       q.Get("id"),
		action:   q.Get("action"),
	}

	parts := splitPath(r.URL.Path)

	if req.resource == "" && len(parts) > 0 {
		req.resource = parts[0]

		if len(parts) > 1 {
			switch {
			case parts[1] == "bulk":
				req.action = "bulk"
			case parts[1] == "login" || parts[1] == "register" || parts[1] == "me":
				req.action = parts[1]
			case isNumeric(parts[1]):
				req.id = parts[1]
				if len(parts) > 2 {
					req.sub = parts[2]
				}
			default:
				// e.g. /blog-posts/by_slug
				req.action = parts[1]
			}
		}
	}

	// Alias routing: the frontend addresses project categories REST-style
	// as /projects/categories while the resource name is project-categories.
	if len(parts) > 1 && parts[0] == "projects" && parts[1] == "categories" {
		req.resource = "project-categories"
		req.action = ""
		req.sub = ""

		if len(parts) > 2 {
			if parts[2] == "bulk" {
				req.action = "bulk"
				req.id = ""
			} else if isNumeric(parts[2]) {
				req.id = parts[2]
			}
		}
	}

	return req
}

// splitPath breaks a URL path into segments, dropping empties and the
// leading "api" mount point.
func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	parts := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" && s != "api" {
			parts = append(parts, s)
		}
	}
	return parts
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
