// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the portfolio API.
package testutil

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

// TestLogger creates a quiet test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

var bindOnce sync.Once

// MockDB creates a sqlmock-backed sqlx database with Postgres bind
// parameters. Returns the database, the mock for expectations, and a
// cleanup function that should be deferred.
func MockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	// sqlx does not know the sqlmock driver; teach it dollar placeholders
	// so Rebind produces the same SQL as against Postgres.
	bindOnce.Do(func() {
		sqlx.BindDriver("sqlmock", sqlx.DOLLAR)
	})

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	sdb := sqlx.NewDb(db, "sqlmock")
	return sdb, mock, func() { _ = sdb.Close() }
}
