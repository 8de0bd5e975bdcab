// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"os"
	"testing"

	"portfolio-api/internal/testutil"
)

func TestMain(m *testing.M) {
	// Error-path tests log through slog; keep the output quiet.
	slog.SetDefault(testutil.TestLogger())
	os.Exit(m.Run())
}
