// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"runtime/debug"

	"log/slog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the flat error shape the frontend expects.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"error": message})
}

// writeMethodNotAllowed writes the standard 405 body.
func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeServerError writes the 500 contract. The error detail is always
// included; the stack trace only outside production.
func (a *API) writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	body := map[string]any{
		"error":   "Internal Server Error",
		"details": err.Error(),
	}
	if !a.cfg.IsProduction() {
		body["stack"] = string(debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// maxBodyBytes caps request bodies at 1 MB; media lives on a CDN, not here.
const maxBodyBytes = 1 << 20

// parseBody reads the request body as a JSON object. Malformed or empty
// bodies resolve to an empty map so writes degrade to empty payloads
// instead of failing the request.
func parseBody(r *http.Request) map[string]any {
	body := map[string]any{}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(data) == 0 {
		return body
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return map[string]any{}
	}
	return body
}

// parseBodyInto decodes the request body into a typed payload with the
// same tolerance as parseBody: decode failures leave the zero value for
// the validator to reject.
func parseBodyInto(r *http.Request, dst any) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, dst)
}
