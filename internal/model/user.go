// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared across the application,
// currently the admin user and the event log entry.
package model

import "time"

// RoleAdmin is the admin user role. The portfolio backend is single-tenant,
// so every authenticated user is reported as an admin.
const RoleAdmin = "admin"

// User represents an admin panel user.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // Never expose in JSON
	Name      *string   `db:"name" json:"name"`
	Avatar    *string   `db:"avatar" json:"avatar"`
	IsActive  bool      `db:"isActive" json:"isActive"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}
