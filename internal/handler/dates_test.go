// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"testing"
	"time"
)

func TestCoerceDates(t *testing.T) {
	body := map[string]any{
		"startDate":    "2024-03-01",
		"endDate":      "",
		"published_at": "2024-03-01T10:30:00Z",
		"issueDate":    "not a date",
		"title":        "2024-03-01",
		"views":        float64(10),
	}

	coerceDates(body)

	if ts, ok := body["startDate"].(time.Time); !ok {
		t.Errorf("startDate = %T, want time.Time", body["startDate"])
	} else if ts.Year() != 2024 || ts.Month() != time.March {
		t.Errorf("startDate parsed to %v", ts)
	}

	if body["endDate"] != nil {
		t.Errorf("empty date string should become nil, got %v", body["endDate"])
	}

	if _, ok := body["published_at"].(time.Time); !ok {
		t.Errorf("published_at = %T, want time.Time", body["published_at"])
	}

	// Unparseable values pass through for the database to judge.
	if body["issueDate"] != "not a date" {
		t.Errorf("issueDate = %v, want untouched string", body["issueDate"])
	}

	// Non-date keys are never touched even when they look like dates.
	if body["title"] != "2024-03-01" {
		t.Errorf("title = %v, want untouched", body["title"])
	}
	if body["views"] != float64(10) {
		t.Errorf("views = %v, want untouched", body["views"])
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"date only", "2024-01-15", true},
		{"rfc3339", "2024-01-15T08:00:00Z", true},
		{"rfc3339 with offset", "2024-01-15T08:00:00+07:00", true},
		{"rfc3339 nano", "2024-01-15T08:00:00.123456789Z", true},
		{"no timezone", "2024-01-15T08:00:00", true},
		{"space separator", "2024-01-15 08:00:00", true},
		{"garbage", "soon", false},
		{"empty", "", false},
		{"unix millis", "1705305600000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseDate(tt.input)
			if ok != tt.ok {
				t.Errorf("parseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}
