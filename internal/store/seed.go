// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin"
	DefaultAdminName     = "Admin"
)

// Seed creates initial data: the owner account and one row for each
// single-row content resource so the public site renders out of the box.
func Seed(ctx context.Context, s *Store) error {
	// Check if admin user already exists
	_, err := s.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping user seed")
	} else if errors.Is(err, sql.ErrNoRows) {
		user, cerr := s.CreateUser(ctx, DefaultAdminEmail, DefaultAdminPassword, DefaultAdminName)
		if cerr != nil {
			return fmt.Errorf("creating admin user: %w", cerr)
		}
		slog.Info("created default admin user",
			"id", user.ID,
			"email", user.Email,
		)
	} else {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	for _, seed := range []struct {
		resource string
		body     Row
	}{
		{"profile", Row{"fullName": DefaultAdminName}},
		{"settings", Row{}},
		{"home-content", Row{}},
		{"about-content", Row{}},
	} {
		res, ok := Lookup(seed.resource)
		if !ok {
			return fmt.Errorf("unknown seed resource %q", seed.resource)
		}
		if _, err := s.Latest(ctx, res); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking %s: %w", seed.resource, err)
		}
		if _, err := s.Insert(ctx, res, seed.body); err != nil {
			return fmt.Errorf("seeding %s: %w", seed.resource, err)
		}
		slog.Info("seeded content row", "resource", seed.resource)
	}

	return nil
}
