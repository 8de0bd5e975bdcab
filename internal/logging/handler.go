// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that mirrors application
// logs into the database-backed event log. Logs at WARN level and above are
// forwarded to the event_log table for auditing.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level logs to the event log.
type EventLogHandler struct {
	inner slog.Handler
	store *store.Store
	level slog.Level // Minimum level to forward to the event log (default: WARN)
}

// NewEventLogHandler creates an EventLogHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and
// the event log.
func NewEventLogHandler(inner slog.Handler, s *store.Store) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: s,
		level: slog.LevelWarn,
	}
}

// NewEventLogHandlerWithLevel creates an EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, s *store.Store, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: s,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		store: h.store,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		store: h.store,
		level: h.level,
	}
}

// writeToEventLog persists a log record. A background context is used so
// the event is recorded even when the request context is already cancelled.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	level := slogLevelToEventLevel(r.Level)
	category := extractCategory(r)
	metadata := extractMetadata(r)

	_ = h.store.CreateEvent(context.Background(), level, category, r.Message, metadata)
}

// slogLevelToEventLevel converts a slog.Level to an event log level.
func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory looks for a "category" attribute or infers the category
// from common message patterns.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false // Stop iteration
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "credential"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "blog") || strings.Contains(msg, "comment") || strings.Contains(msg, "like"):
		return model.EventCategoryBlog
	case strings.Contains(msg, "project"):
		return model.EventCategoryProject
	case strings.Contains(msg, "message") || strings.Contains(msg, "contact"):
		return model.EventCategoryMessage
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return model.EventCategoryConfig
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata collects log attributes into a JSON object string.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true // Skip category, already extracted
		}
		attrs[a.Key] = a.Value.String()
		return true
	})
	if len(attrs) == 0 {
		return "{}"
	}

	b, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(b)
}
