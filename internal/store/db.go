// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements Postgres persistence: connection management,
// embedded migrations, the resource registry and the generic CRUD executor
// that backs the REST surface.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBConfig holds database connection pool options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	// Kept low because the upstream Postgres provider meters connections.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	// Short so pooled connections are released quickly between bursts.
	ConnMaxIdleTime time.Duration
	// ConnectTimeout is applied to the DSN when it does not set one.
	ConnectTimeout time.Duration
}

// DefaultDBConfig returns pool settings tuned for a metered Postgres provider.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Second,
		ConnectTimeout:  60 * time.Second,
	}
}

// NewDB opens a Postgres connection pool with default configuration.
func NewDB(dsn string) (*sqlx.DB, error) {
	return NewDBWithConfig(dsn, DefaultDBConfig())
}

// NewDBWithConfig opens a Postgres connection pool with custom configuration.
func NewDBWithConfig(dsn string, cfg DBConfig) (*sqlx.DB, error) {
	dsn, err := withConnectTimeout(dsn, cfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// withConnectTimeout appends connect_timeout to a postgres:// DSN
// unless the DSN already sets one.
func withConnectTimeout(dsn string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if q.Get("connect_timeout") == "" {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(timeout.Seconds())))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Migrate runs all pending database migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
