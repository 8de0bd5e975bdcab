// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EmptyArrayText is the canonical stored value for an empty JSON array column.
const EmptyArrayText = "[]"

// NormalizeArrayText converts a client-supplied value for a JSON array column
// into canonical array text. Accepted inputs:
//
//   - nil or empty string: becomes "[]"
//   - a JSON array (already decoded by the request parser): re-encoded
//   - a string holding JSON array text: validated and re-encoded
//   - a string holding a JSON-encoded string that itself contains array
//     text (legacy double-encoded rows written by older clients): unwrapped
//
// Anything else is rejected so malformed values never reach storage.
func NormalizeArrayText(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return EmptyArrayText, nil
	case []any:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encoding array: %w", err)
		}
		return string(b), nil
	case []string:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encoding array: %w", err)
		}
		return string(b), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return EmptyArrayText, nil
		}
		return normalizeArrayString(s, true)
	default:
		return "", fmt.Errorf("expected JSON array, got %T", v)
	}
}

// normalizeArrayString validates array text. unwrap allows one level of
// legacy double encoding ("\"[\\\"a\\\"]\"").
func normalizeArrayString(s string, unwrap bool) (string, error) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return "", fmt.Errorf("invalid JSON array text: %w", err)
	}
	switch inner := raw.(type) {
	case []any:
		b, err := json.Marshal(inner)
		if err != nil {
			return "", fmt.Errorf("encoding array: %w", err)
		}
		return string(b), nil
	case string:
		if !unwrap {
			return "", fmt.Errorf("expected JSON array, got nested string")
		}
		return normalizeArrayString(inner, false)
	default:
		return "", fmt.Errorf("expected JSON array, got %T", raw)
	}
}

// SafeArrayText sanitizes array text read from storage. Rows predating the
// write-boundary normalization may hold malformed values; those degrade to
// "[]" instead of breaking the response.
func SafeArrayText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyArrayText
	}
	out, err := normalizeArrayString(s, true)
	if err != nil {
		return EmptyArrayText
	}
	return out
}
