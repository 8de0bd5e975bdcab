// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"
	"testing"
)

// The API layer relies on these column contracts: the profile stats fields
// accept free-form values like "3+", a project can be created without a slug,
// and the date columns the admin forms require are enforced by the schema.
func TestInitSchema_ColumnContracts(t *testing.T) {
	raw, err := migrations.ReadFile("migrations/00001_init.sql")
	if err != nil {
		t.Fatalf("reading init migration: %v", err)
	}
	ddl := string(raw)

	wantPresent := []string{
		`"stats_project_count" TEXT`,
		`"stats_exp_years" TEXT`,
		`"slug" TEXT UNIQUE`,
		`"startDate" TIMESTAMPTZ NOT NULL`,
		`"issueDate" TIMESTAMPTZ NOT NULL`,
	}
	for _, want := range wantPresent {
		if !strings.Contains(ddl, want) {
			t.Errorf("init migration missing %q", want)
		}
	}

	wantAbsent := []string{
		`"stats_project_count" INTEGER`,
		`"stats_exp_years" INTEGER`,
		`"startDate" TIMESTAMPTZ,`,
		`"issueDate" TIMESTAMPTZ,`,
	}
	for _, bad := range wantAbsent {
		if strings.Contains(ddl, bad) {
			t.Errorf("init migration still declares %q", bad)
		}
	}
}
