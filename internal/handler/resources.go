// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"portfolio-api/internal/store"
)

// handleResource serves the generic CRUD surface for every registered
// resource.
func (a *API) handleResource(w http.ResponseWriter, r *http.Request, req apiRequest) {
	a.setCacheHeaders(w, r, req)

	res, ok := store.Lookup(req.resource)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Resource '%s' not found", req.resource))
		return
	}

	if req.action == "bulk" && r.Method == http.MethodDelete {
		a.bulkDelete(w, r, res)
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch {
		case req.id != "":
			a.getOne(w, r, res, req.id)
		case res.Singleton:
			a.getLatest(w, r, res)
		default:
			a.list(w, r, res)
		}
	case http.MethodPost:
		a.create(w, r, res)
	case http.MethodPut, http.MethodPatch:
		a.update(w, r, res, req.id)
	case http.MethodDelete:
		a.delete(w, r, res, req.id)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) list(w http.ResponseWriter, r *http.Request, res *store.Resource) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	rows, err := a.store.List(r.Context(), res, page, limit, q.Get("search"))
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) getOne(w http.ResponseWriter, r *http.Request, res *store.Resource, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	row, err := a.store.Get(r.Context(), res, id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// getLatest serves singleton resources: the most recent row, or an empty
// object when nothing has been saved yet.
func (a *API) getLatest(w http.ResponseWriter, r *http.Request, res *store.Resource) {
	row, err := a.store.Latest(r.Context(), res)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// create inserts a row, or for singleton resources updates the latest row
// in place. Updating an existing singleton answers 200, first save 201.
func (a *API) create(w http.ResponseWriter, r *http.Request, res *store.Resource) {
	body := coerceDates(parseBody(r))

	if res.Singleton {
		delete(body, "id")
		row, created, err := a.store.UpsertLatest(r.Context(), res, body)
		if err != nil {
			a.writeStoreError(w, r, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, row)
		return
	}

	row, err := a.store.Insert(r.Context(), res, body)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (a *API) update(w http.ResponseWriter, r *http.Request, res *store.Resource, rawID string) {
	if rawID == "" {
		writeError(w, http.StatusBadRequest, "ID required for update")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID required for update")
		return
	}

	body := coerceDates(parseBody(r))
	row, err := a.store.Update(r.Context(), res, id, body)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request, res *store.Resource, rawID string) {
	if rawID == "" {
		writeError(w, http.StatusBadRequest, "ID required for delete")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID required for delete")
		return
	}

	if err := a.store.Delete(r.Context(), res, id); err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// bulkDelete removes the ids listed in the body and reports the number of
// rows actually deleted.
func (a *API) bulkDelete(w http.ResponseWriter, r *http.Request, res *store.Resource) {
	body := parseBody(r)
	ids, ok := idList(body["ids"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bulk delete request")
		return
	}

	count, err := a.store.DeleteBulk(r.Context(), res, ids)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// idList coerces a decoded JSON value into ids. Non-numeric entries
// invalidate the whole request.
func idList(v any) ([]int64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		switch n := item.(type) {
		case float64:
			ids = append(ids, int64(n))
		case string:
			id, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, false
			}
			ids = append(ids, id)
		default:
			return nil, false
		}
	}
	return ids, true
}

// writeStoreError maps write-boundary rejections to 400 and everything
// else to the 500 contract.
func (a *API) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrBadValue) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.writeServerError(w, r, err)
}
