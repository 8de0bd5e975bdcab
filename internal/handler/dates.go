// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "time"

// dateFields are the payload keys coerced from strings to timestamps
// before a write. The set spans both naming conventions in the schema.
var dateFields = map[string]struct{}{
	"startDate":            {},
	"endDate":              {},
	"issueDate":            {},
	"published_at":         {},
	"date":                 {},
	"createdAt":            {},
	"updatedAt":            {},
	"created_at":           {},
	"updated_at":           {},
	"maintenance_end_time": {},
}

// dateLayouts are tried in order when coercing a date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coerceDates rewrites known date fields in a payload: parseable strings
// become time.Time, empty strings become explicit nulls, and anything
// unparseable is left untouched for the database to judge.
func coerceDates(body map[string]any) map[string]any {
	for key := range body {
		if _, ok := dateFields[key]; !ok {
			continue
		}
		s, isString := body[key].(string)
		if !isString {
			continue
		}
		if s == "" {
			body[key] = nil
			continue
		}
		if t, ok := parseDate(s); ok {
			body[key] = t
		}
	}
	return body
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
