// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryBlog    = "blog"
	EventCategoryProject = "project"
	EventCategoryMessage = "message"
	EventCategoryConfig  = "config"
	EventCategorySystem  = "system"
)

// Event represents a system event log entry.
type Event struct {
	ID        int64     `db:"id"`
	Level     string    `db:"level"`
	Category  string    `db:"category"`
	Message   string    `db:"message"`
	Metadata  string    `db:"metadata"` // JSON string
	CreatedAt time.Time `db:"created_at"`
}
