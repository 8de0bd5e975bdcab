// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateEvent appends a row to the event log. Used by the slog handler
// that mirrors warnings and errors into the database.
func (s *Store) CreateEvent(ctx context.Context, level, category, message, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO "event_log" ("level", "category", "message", "metadata", "created_at")
		 VALUES ($1, $2, $3, $4, $5)`,
		level, category, message, metadata, time.Now().UTC())
	return err
}

// RecentEvents returns the newest event log entries, capped at limit.
func (s *Store) RecentEvents(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.queryRows(ctx, &Resource{Table: "event_log"},
		`SELECT * FROM "event_log" ORDER BY "id" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}
